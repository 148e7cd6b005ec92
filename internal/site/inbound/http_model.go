package inbound

import (
	"encoding/xml"
	"net/http"

	"github.com/shandysiswandi/gomotor/internal/site/entity"
)

type IconResponse struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes,omitempty"`
	Type    string `json:"type,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

type ManifestResponse struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color,omitempty"`
	ThemeColor      string         `json:"theme_color,omitempty"`
	Icons           []IconResponse `json:"icons"`
}

func toManifestResponse(m entity.Manifest) ManifestResponse {
	icons := make([]IconResponse, 0, len(m.Icons))
	for _, i := range m.Icons {
		icons = append(icons, IconResponse(i))
	}
	return ManifestResponse{
		Name:            m.Name,
		ShortName:       m.ShortName,
		Description:     m.Description,
		StartURL:        m.StartURL,
		Display:         m.Display,
		BackgroundColor: m.BackgroundColor,
		ThemeColor:      m.ThemeColor,
		Icons:           icons,
	}
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	code   int
}

func (h HealthResponse) StatusCode() int { return h.code }

func (h HealthResponse) Message() string {
	if h.code != http.StatusOK {
		return "service unavailable"
	}
	return "service healthy"
}

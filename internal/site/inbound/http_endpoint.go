package inbound

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type HTTPEndpoint struct {
	uc uc
}

// Manifest serves the PWA manifest.
// @Summary Web app manifest
// @Tags Site
// @Produce json
// @Success 200 {object} ManifestResponse
// @Router /manifest.webmanifest [get]
func (h *HTTPEndpoint) Manifest() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(toManifestResponse(h.uc.Manifest(r.Context())))
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to encode manifest", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/manifest+json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body)
	})
}

// Robots serves robots.txt.
// @Summary Crawler rules
// @Tags Site
// @Produce plain
// @Success 200 {string} string
// @Router /robots.txt [get]
func (h *HTTPEndpoint) Robots() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write([]byte(h.uc.Robots(r.Context())))
	})
}

// Sitemap serves the XML sitemap of public pages.
// @Summary Sitemap
// @Tags Site
// @Produce xml
// @Success 200 {string} string
// @Router /sitemap.xml [get]
func (h *HTTPEndpoint) Sitemap() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls, err := h.uc.Sitemap(r.Context())
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		set := urlset{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(urls))}
		for _, u := range urls {
			item := sitemapURL{Loc: u.Loc, ChangeFreq: u.ChangeFreq}
			if !u.LastMod.IsZero() {
				item.LastMod = u.LastMod.UTC().Format(time.RFC3339)
			}
			if u.Priority > 0 {
				item.Priority = strconv.FormatFloat(u.Priority, 'f', 1, 64)
			}
			set.URLs = append(set.URLs, item)
		}

		body, err := xml.Marshal(set)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to encode sitemap", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(xml.Header))
		_, _ = w.Write(body)
	})
}

// Organization returns the dealership as schema.org JSON-LD.
// @Summary Organization structured data
// @Tags Site
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/site/organization [get]
func (h *HTTPEndpoint) Organization(r *router.Request) (any, error) {
	return h.uc.Organization(r.Context()), nil
}

// Health reports whether postgres and redis answer.
// @Summary Health check
// @Tags Site
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	res := h.uc.Health(r.Context())
	if !res.Healthy {
		return HealthResponse{Status: "unavailable", Checks: res.Checks, code: http.StatusServiceUnavailable}, nil
	}
	return HealthResponse{Status: "ok", Checks: res.Checks, code: http.StatusOK}, nil
}

package entity

import "time"

type Icon struct {
	Src     string
	Sizes   string
	Type    string
	Purpose string
}

// Manifest is the installable web app description served to browsers.
type Manifest struct {
	Name            string
	ShortName       string
	Description     string
	StartURL        string
	Display         string
	BackgroundColor string
	ThemeColor      string
	Icons           []Icon
}

// PageRef is one public vehicle page listed in the sitemap.
type PageRef struct {
	Slug      string
	UpdatedAt time.Time
}

type SitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

type Health struct {
	Healthy bool
	Checks  map[string]string
}

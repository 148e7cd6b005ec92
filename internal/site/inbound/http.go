package inbound

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/site/entity"
)

type uc interface {
	Manifest(ctx context.Context) entity.Manifest
	Organization(ctx context.Context) map[string]any
	Robots(ctx context.Context) string
	Sitemap(ctx context.Context) ([]entity.SitemapURL, error)
	Health(ctx context.Context) entity.Health
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	pub := r.Public()
	pub.GETRaw("/manifest.webmanifest", end.Manifest())
	pub.GETRaw("/robots.txt", end.Robots())
	pub.GETRaw("/sitemap.xml", end.Sitemap())
	pub.GET("/api/v1/site/organization", end.Organization)
	pub.GET("/healthz", end.Health)
}

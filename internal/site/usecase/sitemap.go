package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/site/entity"
)

// sitemapMax is the protocol limit of URLs in a single sitemap file.
const sitemapMax = 50000

// publicStatuses are the vehicle statuses reachable by slug.
var publicStatuses = []string{"available", "reserved", "sold"}

func (s *Usecase) Sitemap(ctx context.Context) ([]entity.SitemapURL, error) {
	ctx, span := s.startSpan(ctx, "Sitemap")
	defer span.End()

	fixed := 2
	limit := s.cfg.GetInt("modules.site.sitemap_limit")
	if limit <= 0 || limit > sitemapMax-fixed {
		limit = sitemapMax - fixed
	}

	pages, err := s.repoDB.ListPages(ctx, publicStatuses, int32(limit))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list sitemap vehicles", "error", err)
		return nil, goerror.NewServer(err)
	}

	base := s.siteURL()
	latest := s.clock.Now()
	if len(pages) > 0 {
		latest = pages[0].UpdatedAt
	}

	urls := make([]entity.SitemapURL, 0, len(pages)+fixed)
	urls = append(urls,
		entity.SitemapURL{Loc: base + "/", LastMod: latest, ChangeFreq: "daily", Priority: 1.0},
		entity.SitemapURL{Loc: base + "/vehicles", LastMod: latest, ChangeFreq: "daily", Priority: 0.9},
	)
	for _, p := range pages {
		urls = append(urls, entity.SitemapURL{
			Loc:        base + "/vehicles/" + p.Slug,
			LastMod:    p.UpdatedAt,
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	return urls, nil
}

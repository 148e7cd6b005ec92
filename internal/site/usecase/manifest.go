package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/site/entity"
)

// Manifest builds the PWA manifest from site.* configuration. Icons are
// configured as "src|sizes|type|purpose" entries.
func (s *Usecase) Manifest(ctx context.Context) entity.Manifest {
	_, span := s.startSpan(ctx, "Manifest")
	defer span.End()

	name := s.cfg.GetString("site.name")
	short := s.cfg.GetString("site.short_name")
	if short == "" {
		short = name
	}
	start := s.cfg.GetString("site.start_url")
	if start == "" {
		start = "/"
	}

	return entity.Manifest{
		Name:            name,
		ShortName:       short,
		Description:     s.cfg.GetString("site.description"),
		StartURL:        start,
		Display:         "standalone",
		BackgroundColor: s.cfg.GetString("site.background_color"),
		ThemeColor:      s.cfg.GetString("site.theme_color"),
		Icons:           parseIcons(s.cfg.GetArray("site.icons")),
	}
}

func parseIcons(raw []string) []entity.Icon {
	icons := make([]entity.Icon, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, "|")
		for len(parts) < 4 {
			parts = append(parts, "")
		}

		icon := entity.Icon{
			Src:     strings.TrimSpace(parts[0]),
			Sizes:   strings.TrimSpace(parts[1]),
			Type:    strings.TrimSpace(parts[2]),
			Purpose: strings.TrimSpace(parts[3]),
		}
		if icon.Src == "" {
			continue
		}
		if icon.Purpose == "" {
			icon.Purpose = "any"
		}
		icons = append(icons, icon)
	}
	return icons
}

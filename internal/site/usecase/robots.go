package usecase

import (
	"context"
	"strings"
)

// Robots renders robots.txt. The admin API is never crawled.
func (s *Usecase) Robots(ctx context.Context) string {
	_, span := s.startSpan(ctx, "Robots")
	defer span.End()

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/v1/admin/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.siteURL() + "/sitemap.xml\n")

	return b.String()
}

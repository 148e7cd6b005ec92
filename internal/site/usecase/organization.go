package usecase

import "context"

// Organization returns the schema.org AutoDealer document for the dealership.
func (s *Usecase) Organization(ctx context.Context) map[string]any {
	_, span := s.startSpan(ctx, "Organization")
	defer span.End()

	doc := map[string]any{
		"@context": "https://schema.org",
		"@type":    "AutoDealer",
		"name":     s.cfg.GetString("site.name"),
		"url":      s.siteURL(),
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   s.cfg.GetString("site.address.street"),
			"addressLocality": s.cfg.GetString("site.address.locality"),
			"addressRegion":   s.cfg.GetString("site.address.region"),
			"postalCode":      s.cfg.GetString("site.address.postal_code"),
			"addressCountry":  s.cfg.GetString("site.address.country"),
		},
	}

	optional := map[string]string{
		"logo":      s.absolute(s.cfg.GetString("site.logo")),
		"telephone": s.cfg.GetString("site.telephone"),
		"email":     s.cfg.GetString("site.email"),
	}
	for k, v := range optional {
		if v != "" {
			doc[k] = v
		}
	}

	if hours := s.cfg.GetArray("site.opening_hours"); len(hours) > 0 {
		doc["openingHours"] = hours
	}
	if same := s.cfg.GetArray("site.same_as"); len(same) > 0 {
		doc["sameAs"] = same
	}

	return doc
}

package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/valueobject"
)

const seoDescriptionMax = 160

type VehicleSEO struct {
	Title        string
	Description  string
	CanonicalURL string
	OpenGraph    map[string]string
	JSONLD       map[string]any
}

// GetVehicleSEO builds page metadata and a schema.org Car document for the
// public detail page.
func (s *Usecase) GetVehicleSEO(ctx context.Context, in GetVehicleInput) (*VehicleSEO, error) {
	ctx, span := s.startSpan(ctx, "GetVehicleSEO")
	defer span.End()

	v, err := s.GetVehicle(ctx, in)
	if err != nil {
		return nil, err
	}

	siteName := s.cfg.GetString("site.name")
	siteURL := strings.TrimRight(s.cfg.GetString("site.url"), "/")
	canonical := siteURL + "/vehicles/" + v.Slug
	title := v.Title + " | " + siteName
	desc := truncate(describe(*v), seoDescriptionMax)
	images := lo.Map(v.Images, func(i entity.VehicleImage, _ int) string { return i.URL })

	og := map[string]string{
		"og:type":        "product",
		"og:title":       title,
		"og:description": desc,
		"og:url":         canonical,
		"og:site_name":   siteName,
	}
	if len(images) > 0 {
		og["og:image"] = images[0]
	}

	return &VehicleSEO{
		Title:        title,
		Description:  desc,
		CanonicalURL: canonical,
		OpenGraph:    og,
		JSONLD:       carJSONLD(*v, canonical, desc, images, siteName, siteURL),
	}, nil
}

func describe(v entity.Vehicle) string {
	price := valueobject.Money{Amount: v.Price, Currency: v.Currency}.Format()
	parts := []string{
		fmt.Sprintf("%d %s %s", v.Year, v.Make, strings.TrimSpace(v.Model+" "+v.Variant)),
		valueobject.Money{Amount: int64(v.MileageKM)}.Format() + " km",
		string(v.Transmission),
		string(v.Fuel),
	}
	out := strings.Join(lo.Compact(parts), ", ") + ". " + price + "."
	if d := strings.TrimSpace(v.Description); d != "" {
		out += " " + strings.Join(strings.Fields(d), " ")
	}
	return out
}

// truncate cuts s to at most n runes, ending in "..." when shortened.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-3])) + "..."
}

func carJSONLD(v entity.Vehicle, canonical, desc string, images []string, siteName, siteURL string) map[string]any {
	doc := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "Car",
		"name":             v.Title,
		"description":      desc,
		"url":              canonical,
		"brand":            map[string]any{"@type": "Brand", "name": v.Make},
		"model":            v.Model,
		"vehicleModelDate": strconv.Itoa(v.Year),
		"mileageFromOdometer": map[string]any{
			"@type":    "QuantitativeValue",
			"value":    v.MileageKM,
			"unitCode": "KMT",
		},
		"fuelType":            v.Fuel.SchemaOrg(),
		"vehicleTransmission": transmissionLabel(v.Transmission),
		"bodyType":            string(v.BodyType),
		"itemCondition":       conditionURL(v.Condition),
		"image":               images,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         valueobject.Money{Amount: v.Price}.Decimal(),
			"priceCurrency": strings.ToUpper(v.Currency),
			"availability":  v.Status.Availability(),
			"url":           canonical,
			"seller": map[string]any{
				"@type": "AutoDealer",
				"name":  siteName,
				"url":   siteURL,
			},
		},
	}
	if v.Color != "" {
		doc["color"] = v.Color
	}
	if v.VIN != "" {
		doc["vehicleIdentificationNumber"] = v.VIN
	}
	if v.Seats > 0 {
		doc["seatingCapacity"] = v.Seats
	}
	return doc
}

func transmissionLabel(t entity.Transmission) string {
	if t == entity.TransmissionManual {
		return "Manual"
	}
	return "Automatic"
}

func conditionURL(c entity.Condition) string {
	if c == entity.ConditionNew {
		return "https://schema.org/NewCondition"
	}
	return "https://schema.org/UsedCondition"
}

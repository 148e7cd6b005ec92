package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
)

type VehicleRequest struct {
	VIN          string   `json:"vin"`
	Title        string   `json:"title"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Variant      string   `json:"variant"`
	Year         int      `json:"year"`
	Price        int64    `json:"price"`
	Currency     string   `json:"currency"`
	MileageKM    int      `json:"mileage_km"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	BodyType     string   `json:"body_type"`
	Condition    string   `json:"condition"`
	Color        string   `json:"color"`
	EngineCC     int      `json:"engine_cc"`
	Seats        int      `json:"seats"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
}

type VehicleStatusRequest struct {
	Status string `json:"status"`
}

type ImageResponse struct {
	ID       int64  `json:"id,string"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type VehicleResponse struct {
	ID           int64           `json:"id,string"`
	Slug         string          `json:"slug"`
	VIN          string          `json:"vin,omitempty"`
	Title        string          `json:"title"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Variant      string          `json:"variant,omitempty"`
	Year         int             `json:"year"`
	Price        int64           `json:"price"`
	Currency     string          `json:"currency"`
	MileageKM    int             `json:"mileage_km"`
	Fuel         string          `json:"fuel"`
	Transmission string          `json:"transmission"`
	BodyType     string          `json:"body_type"`
	Condition    string          `json:"condition"`
	Color        string          `json:"color,omitempty"`
	EngineCC     int             `json:"engine_cc,omitempty"`
	Seats        int             `json:"seats,omitempty"`
	Description  string          `json:"description,omitempty"`
	Features     []string        `json:"features"`
	Status       string          `json:"status"`
	Featured     bool            `json:"featured"`
	Images       []ImageResponse `json:"images"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toVehicleResponse(v entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Slug:         v.Slug,
		VIN:          v.VIN,
		Title:        v.Title,
		Make:         v.Make,
		Model:        v.Model,
		Variant:      v.Variant,
		Year:         v.Year,
		Price:        v.Price,
		Currency:     v.Currency,
		MileageKM:    v.MileageKM,
		Fuel:         string(v.Fuel),
		Transmission: string(v.Transmission),
		BodyType:     string(v.BodyType),
		Condition:    string(v.Condition),
		Color:        v.Color,
		EngineCC:     v.EngineCC,
		Seats:        v.Seats,
		Description:  v.Description,
		Features:     lo.Ternary(v.Features == nil, []string{}, v.Features),
		Status:       string(v.Status),
		Featured:     v.Featured,
		Images:       lo.Map(v.Images, func(i entity.VehicleImage, _ int) ImageResponse { return toImageResponse(i) }),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toImageResponse(i entity.VehicleImage) ImageResponse {
	return ImageResponse{ID: i.ID, URL: i.URL, Position: i.Position}
}

type VehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	// meta
	total int64
	size  int
	page  int
}

func (r VehiclesResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type VehicleCreatedResponse struct {
	VehicleResponse
}

func (VehicleCreatedResponse) StatusCode() int { return http.StatusCreated }

func (VehicleCreatedResponse) Message() string { return "Vehicle created" }

type ImageCreatedResponse struct {
	ImageResponse
}

func (ImageCreatedResponse) StatusCode() int { return http.StatusCreated }

type SEOResponse struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	CanonicalURL string            `json:"canonical_url"`
	OpenGraph    map[string]string `json:"open_graph"`
	JSONLD       map[string]any    `json:"json_ld" swaggertype:"object"`
}

type MakeResponse struct {
	Make  string `json:"make"`
	Count int64  `json:"count"`
}

type MakesResponse struct {
	Makes []MakeResponse `json:"makes"`
}

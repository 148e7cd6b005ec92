package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
)

type BuyLeadRequest struct {
	VehicleID        int64  `json:"vehicle_id,string,omitempty"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PreferredContact string `json:"preferred_contact"`
	Message          string `json:"message"`
	WantsFinancing   bool   `json:"wants_financing"`
	HasTradeIn       bool   `json:"has_trade_in"`
	Source           string `json:"source"`
}

type SellLeadRequest struct {
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	MileageKM   int      `json:"mileage_km"`
	Condition   string   `json:"condition"`
	AskingPrice int64    `json:"asking_price"`
	VIN         string   `json:"vin"`
	Message     string   `json:"message"`
	Photos      []string `json:"photos"`
}

type LeadCreatedResponse struct {
	ID int64 `json:"id,string"`
}

func (LeadCreatedResponse) StatusCode() int { return http.StatusCreated }

func (LeadCreatedResponse) Message() string {
	return "Thank you. Our team will contact you shortly."
}

type PhotoResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

func (PhotoResponse) StatusCode() int { return http.StatusCreated }

type UpdateLeadRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type BuyLeadResponse struct {
	ID               int64     `json:"id,string"`
	VehicleID        int64     `json:"vehicle_id,string,omitempty"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PreferredContact string    `json:"preferred_contact"`
	Message          string    `json:"message"`
	WantsFinancing   bool      `json:"wants_financing"`
	HasTradeIn       bool      `json:"has_trade_in"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	Source           string    `json:"source,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toBuyLeadResponse(l entity.BuyLead) BuyLeadResponse {
	return BuyLeadResponse{
		ID:               l.ID,
		VehicleID:        l.VehicleID,
		FullName:         l.FullName,
		Email:            l.Email,
		Phone:            l.Phone,
		PreferredContact: string(l.PreferredContact),
		Message:          l.Message,
		WantsFinancing:   l.WantsFinancing,
		HasTradeIn:       l.HasTradeIn,
		Status:           string(l.Status),
		Notes:            l.Notes,
		Source:           l.Source,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

type SellLeadResponse struct {
	ID          int64     `json:"id,string"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	MileageKM   int       `json:"mileage_km"`
	Condition   string    `json:"condition"`
	AskingPrice int64     `json:"asking_price,omitempty"`
	VIN         string    `json:"vin,omitempty"`
	Message     string    `json:"message"`
	Photos      []string  `json:"photos"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toSellLeadResponse(l entity.SellLead) SellLeadResponse {
	return SellLeadResponse{
		ID:          l.ID,
		FullName:    l.FullName,
		Email:       l.Email,
		Phone:       l.Phone,
		Make:        l.Make,
		Model:       l.Model,
		Year:        l.Year,
		MileageKM:   l.MileageKM,
		Condition:   l.Condition,
		AskingPrice: l.AskingPrice,
		VIN:         l.VIN,
		Message:     l.Message,
		Photos:      l.Photos,
		Status:      string(l.Status),
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type pageMeta struct {
	total int64
	size  int
	page  int
}

func (m pageMeta) Meta() map[string]any {
	return map[string]any{
		"total": m.total,
		"size":  m.size,
		"page":  m.page,
	}
}

type BuyLeadsResponse struct {
	Leads []BuyLeadResponse `json:"leads"`
	pageMeta
}

type SellLeadsResponse struct {
	Leads []SellLeadResponse `json:"leads"`
	pageMeta
}

package inbound

import (
	"strconv"
	"time"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
)

type DeliveryResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Attempts  int32     `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDeliveryResponse(d entity.Delivery, _ int) DeliveryResponse {
	return DeliveryResponse{
		ID:        strconv.FormatInt(d.ID, 10),
		Event:     d.Event,
		Recipient: d.Recipient,
		Subject:   d.Subject,
		Status:    string(d.Status),
		Attempts:  d.Attempts,
		LastError: d.LastError,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type DeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`

	total int64
	size  int
	page  int
}

func (r DeliveriesResponse) Meta() map[string]any {
	return map[string]any{"total": r.total, "size": r.size, "page": r.page}
}

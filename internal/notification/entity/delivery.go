package entity

import "time"

// DeliveryStatus is where an outgoing email is in its lifecycle.
type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusQueued, DeliveryStatusSent, DeliveryStatusFailed:
		return true
	default:
		return false
	}
}

// Delivery is one email send attempt chain, recorded for the back office.
type Delivery struct {
	ID        int64
	Event     string
	Recipient string
	Subject   string
	Status    DeliveryStatus
	Attempts  int32
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DeliveryFilter struct {
	Status DeliveryStatus
	Page   int
	Size   int
}

package entity

import (
	"slices"
	"time"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

func (s Status) Valid() bool {
	return slices.Contains([]Status{StatusNew, StatusContacted, StatusQualified, StatusWon, StatusLost}, s)
}

type PreferredContact string

const (
	ContactEmail    PreferredContact = "email"
	ContactPhone    PreferredContact = "phone"
	ContactWhatsApp PreferredContact = "whatsapp"
)

type BuyLead struct {
	ID               int64
	VehicleID        int64 // 0 when the enquiry is not about a listing
	FullName         string
	Email            string
	Phone            string
	PreferredContact PreferredContact
	Message          string
	WantsFinancing   bool
	HasTradeIn       bool
	Status           Status
	Notes            string
	Source           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SellLead struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	Make        string
	Model       string
	Year        int
	MileageKM   int
	Condition   string
	AskingPrice int64 // 0 when the seller wants an offer
	VIN         string
	Message     string
	Photos      []string
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter is the admin list query. Zero values mean "no filter".
type Filter struct {
	Status   Status
	Search   string
	DateFrom time.Time
	DateTo   time.Time // exclusive
	Page     int
	Size     int
}

// VehicleRef is the slice of a listing a buy lead needs.
type VehicleRef struct {
	ID    int64
	Slug  string
	Title string
}

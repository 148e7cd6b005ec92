package entity

import "time"

type Vehicle struct {
	ID           int64
	Slug         string
	VIN          string
	Title        string
	Make         string
	Model        string
	Variant      string
	Year         int
	Price        int64
	Currency     string
	MileageKM    int
	Fuel         Fuel
	Transmission Transmission
	BodyType     BodyType
	Condition    Condition
	Color        string
	EngineCC     int
	Seats        int
	Description  string
	Features     []string
	Status       VehicleStatus
	Featured     bool
	Images       []VehicleImage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type VehicleImage struct {
	ID        int64
	VehicleID int64
	URL       string
	Key       string
	Position  int
}

// VehicleFilter is the normalized list query. Zero values mean "no filter"
// except Statuses, which is always applied.
type VehicleFilter struct {
	Statuses     []VehicleStatus
	Search       string
	Make         string
	Model        string
	BodyType     BodyType
	Fuel         Fuel
	Transmission Transmission
	Condition    Condition
	YearMin      int
	YearMax      int
	PriceMin     int64
	PriceMax     int64
	MileageMax   int
	Featured     *bool
	Sort         Sort
	Page         int
	Size         int
}

type MakeCount struct {
	Make  string
	Count int64
}

package entity

import "slices"

type Fuel string

const (
	FuelPetrol   Fuel = "petrol"
	FuelDiesel   Fuel = "diesel"
	FuelHybrid   Fuel = "hybrid"
	FuelElectric Fuel = "electric"
	FuelLPG      Fuel = "lpg"
)

func (f Fuel) Valid() bool {
	return slices.Contains([]Fuel{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG}, f)
}

// SchemaOrg is the fuelType value used in structured data.
func (f Fuel) SchemaOrg() string {
	switch f {
	case FuelPetrol:
		return "Gasoline"
	case FuelDiesel:
		return "Diesel"
	case FuelHybrid:
		return "Hybrid"
	case FuelElectric:
		return "Electric"
	case FuelLPG:
		return "LPG"
	default:
		return ""
	}
}

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

func (t Transmission) Valid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

type BodyType string

const (
	BodySedan       BodyType = "sedan"
	BodyHatchback   BodyType = "hatchback"
	BodySUV         BodyType = "suv"
	BodyMPV         BodyType = "mpv"
	BodyPickup      BodyType = "pickup"
	BodyCoupe       BodyType = "coupe"
	BodyConvertible BodyType = "convertible"
	BodyWagon       BodyType = "wagon"
	BodyVan         BodyType = "van"
)

func (b BodyType) Valid() bool {
	return slices.Contains([]BodyType{
		BodySedan, BodyHatchback, BodySUV, BodyMPV, BodyPickup,
		BodyCoupe, BodyConvertible, BodyWagon, BodyVan,
	}, b)
}

type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

type VehicleStatus string

const (
	StatusDraft     VehicleStatus = "draft"
	StatusAvailable VehicleStatus = "available"
	StatusReserved  VehicleStatus = "reserved"
	StatusSold      VehicleStatus = "sold"
)

func (s VehicleStatus) Valid() bool {
	return slices.Contains([]VehicleStatus{StatusDraft, StatusAvailable, StatusReserved, StatusSold}, s)
}

// PublicStatuses are listed by default on the public catalog.
var PublicStatuses = []VehicleStatus{StatusAvailable, StatusReserved}

// IsPublic reports whether the status may be shown to visitors. Sold
// vehicles stay reachable by slug and can be listed when asked for.
func (s VehicleStatus) IsPublic() bool {
	return s == StatusAvailable || s == StatusReserved || s == StatusSold
}

// Availability is the schema.org ItemAvailability for the offer.
func (s VehicleStatus) Availability() string {
	switch s {
	case StatusAvailable:
		return "https://schema.org/InStock"
	case StatusReserved:
		return "https://schema.org/LimitedAvailability"
	default:
		return "https://schema.org/SoldOut"
	}
}

type Sort string

const (
	SortNewest     Sort = "newest"
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortYearDesc   Sort = "year_desc"
	SortMileageAsc Sort = "mileage_asc"
)

func (s Sort) Valid() bool {
	return slices.Contains([]Sort{SortNewest, SortPriceAsc, SortPriceDesc, SortYearDesc, SortMileageAsc}, s)
}

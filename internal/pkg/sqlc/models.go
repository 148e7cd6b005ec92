package sqlc

import "github.com/jackc/pgx/v5/pgtype"

type Admin struct {
	ID        int64
	Email     string
	FullName  string
	AvatarUrl string
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type AdminMfa struct {
	AdminID    int64
	Secret     []byte
	KeyVersion int16
	EnabledAt  pgtype.Timestamptz
	LastUsedAt pgtype.Timestamptz
}

type AdminBackupCode struct {
	ID        int64
	AdminID   int64
	CodeHash  string
	UsedAt    pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
}

type Vehicle struct {
	ID           int64
	Slug         string
	Vin          pgtype.Text
	Title        string
	Make         string
	Model        string
	Variant      string
	Year         int32
	Price        int64
	Currency     string
	MileageKm    int32
	Fuel         string
	Transmission string
	BodyType     string
	Condition    string
	Color        string
	EngineCc     int32
	Seats        int16
	Description  string
	Features     []string
	Status       string
	Featured     bool
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type VehicleImage struct {
	ID        int64
	VehicleID int64
	Url       string
	ObjectKey string
	Position  int32
	CreatedAt pgtype.Timestamptz
}

type BuyLead struct {
	ID               int64
	VehicleID        pgtype.Int8
	FullName         string
	Email            string
	Phone            string
	PreferredContact string
	Message          string
	WantsFinancing   bool
	HasTradeIn       bool
	Status           string
	Notes            string
	Source           string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type SellLead struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	Make        string
	Model       string
	Year        int32
	MileageKm   int32
	Condition   string
	AskingPrice pgtype.Int8
	Vin         pgtype.Text
	Message     string
	Photos      []string
	Status      string
	Notes       string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type NotificationDelivery struct {
	ID        int64
	Event     string
	Recipient string
	Subject   string
	Status    string
	Attempts  int32
	LastError string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

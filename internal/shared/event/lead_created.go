package event

const LeadCreatedDestination string = "lead.created"
const LeadCreatedConsumerNotification string = "lead_created_notification"

const (
	LeadTypeBuy  = "buy"
	LeadTypeSell = "sell"
)

// LeadCreatedMessage carries enough of the lead to write both the sales
// summary and the customer acknowledgement without a lookup.
type LeadCreatedMessage struct {
	LeadID    int64  `json:"lead_id"`
	Type      string `json:"type"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`
	Subject   string `json:"subject"`
	Details   []Pair `json:"details,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Pair is one labelled line of the sales summary.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

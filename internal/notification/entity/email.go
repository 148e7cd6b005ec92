package entity

// Event names recorded on deliveries.
const (
	EventLeadSales     = "lead.created.sales"
	EventLeadCustomer  = "lead.created.customer"
	EventAdminSecurity = "admin.security"
)

// Email is a rendered message ready for the mail driver.
type Email struct {
	Event   string
	To      string
	Subject string
	HTML    string
	Text    string
}

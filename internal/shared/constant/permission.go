package constant

// Casbin objects. Policies grant them to the admin and sales roles.
const (
	PermCatalogVehicles        = "catalog.vehicles"
	PermLeadLeads              = "lead.leads"
	PermIdentityProfile        = "identity.profile"
	PermNotificationDeliveries = "notification.deliveries"
)

// Casbin actions.
const (
	PermActRead  = "read"
	PermActWrite = "write"
)

// Roles an admin account can hold.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

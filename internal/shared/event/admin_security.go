package event

const AdminSecurityDestination string = "admin.security"
const AdminSecurityConsumerNotification string = "admin_security_notification"

const (
	SecurityPasswordChanged    = "password_changed"
	SecurityTwoFactorEnabled   = "two_factor_enabled"
	SecurityTwoFactorDisabled  = "two_factor_disabled"
	SecurityBackupCodesRenewed = "backup_codes_regenerated"
)

type AdminSecurityMessage struct {
	AdminID    int64  `json:"admin_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Change     string `json:"change"`
	IP         string `json:"ip,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}

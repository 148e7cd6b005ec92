package entity

type AdminStatus string

const (
	AdminStatusActive   AdminStatus = "active"
	AdminStatusDisabled AdminStatus = "disabled"
)

func (s AdminStatus) Active() bool { return s == AdminStatusActive }

// LoginState is what a client should do next after an auth call.
type LoginState string

const (
	LoginStateAuthenticated LoginState = "authenticated"
	LoginStateRequires2FA   LoginState = "requires_2fa"
	LoginStateAnonymous     LoginState = "anonymous"
)

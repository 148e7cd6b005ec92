package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/gomotor/internal/identity/usecase"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CodeRequest struct {
	Code string `json:"code"`
}

// LoginResponse also sets the session cookie. The token is in the body for
// clients that send it as a bearer header.
type LoginResponse struct {
	State       string    `json:"state" example:"authenticated"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`

	cookie *http.Cookie
}

func (l LoginResponse) Cookies() []*http.Cookie { return []*http.Cookie{l.cookie} }

type LogoutResponse struct {
	cookie *http.Cookie
}

func (LogoutResponse) StatusCode() int { return http.StatusNoContent }

func (l LogoutResponse) Cookies() []*http.Cookie { return []*http.Cookie{l.cookie} }

type ProfileResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	AvatarURL        string    `json:"avatar_url"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
}

func toProfileResponse(p *usecase.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:               strconv.FormatInt(p.ID, 10),
		Email:            p.Email,
		FullName:         p.FullName,
		AvatarURL:        p.AvatarURL,
		TwoFactorEnabled: p.TwoFactorEnabled,
		Role:             p.Role,
		CreatedAt:        p.CreatedAt,
	}
}

type SessionResponse struct {
	State string           `json:"state" example:"anonymous"`
	Admin *ProfileResponse `json:"admin,omitempty"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ChangePasswordResponse struct {
	LoginResponse
}

func (ChangePasswordResponse) Message() string { return "Password updated" }

type SetupTwoFactorRequest struct {
	CurrentPassword string `json:"current_password"`
}

type SetupTwoFactorResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type DisableTwoFactorRequest struct {
	CurrentPassword string `json:"current_password"`
	Code            string `json:"code"`
}

type BackupCodesResponse struct {
	BackupCodes []string `json:"backup_codes"`
}

func (BackupCodesResponse) Message() string {
	return "Store these backup codes somewhere safe. They will not be shown again."
}

package inbound

import (
	"github.com/shandysiswandi/gomotor/internal/identity/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
)

// HTTPEndpoint exposes login, session and profile handlers for admins.
type HTTPEndpoint struct {
	uc     uc
	cookie session.Cookie
}

func (h *HTTPEndpoint) loginResponse(out *usecase.LoginOutput) LoginResponse {
	return LoginResponse{
		State:       string(out.State),
		AccessToken: out.Token.Value,
		ExpiresAt:   out.Token.ExpiresAt,
		cookie:      h.cookie.Issue(out.Token.Value, out.Token.ExpiresAt),
	}
}

func client(r *router.Request) usecase.Client {
	return usecase.Client{IP: r.RemoteAddr, UserAgent: r.UserAgent()}
}

// Login checks an admin's password and starts a session.
// @Summary Log in
// @Description Sets the session cookie. When two-factor is enabled the session stays in the requires_2fa state until /api/v1/auth/login/2fa succeeds.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Session started"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return h.loginResponse(out), nil
}

// LoginTwoFactor finishes a login with a TOTP or backup code.
// @Summary Complete two-factor login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body CodeRequest true "TOTP or backup code"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Session completed"
// @Failure 401 {object} router.errorResponse "Invalid two-factor code"
// @Failure 403 {object} router.errorResponse "Two-factor already completed"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Router /api/v1/auth/login/2fa [post]
func (h *HTTPEndpoint) LoginTwoFactor(r *router.Request) (any, error) {
	var req CodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginTwoFactor(r.Context(), usecase.LoginTwoFactorInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	return h.loginResponse(out), nil
}

// Session reports the login state of the caller. It never fails on a
// missing or stale session.
// @Summary Session check
// @Tags Auth
// @Produce json
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Router /api/v1/auth/session [get]
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	out, err := h.uc.Session(r.Context())
	if err != nil {
		return nil, err
	}

	return SessionResponse{State: string(out.State), Admin: toProfileResponse(out.Admin)}, nil
}

// Logout ends the session and clears the cookie.
// @Summary Log out
// @Tags Auth
// @Success 204 "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{cookie: h.cookie.Clear()}, nil
}

func (h *HTTPEndpoint) GetProfile(r *router.Request) (any, error) {
	p, err := h.uc.GetProfile(r.Context())
	if err != nil {
		return nil, err
	}

	return toProfileResponse(p), nil
}

func (h *HTTPEndpoint) UpdateProfile(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProfile(r.Context(), usecase.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(p), nil
}

// UpdateAvatar replaces the admin's avatar image.
// @Summary Upload avatar
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Updated profile"
// @Failure 400 {object} router.errorResponse "Invalid image"
// @Router /api/v1/admin/profile/avatar [put]
func (h *HTTPEndpoint) UpdateAvatar(r *router.Request) (any, error) {
	file, err := r.StreamSingleFile("avatar")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p, err := h.uc.UpdateAvatar(r.Context(), usecase.UpdateAvatarInput{File: file})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(p), nil
}

// ChangePassword sets a new password and rotates the session cookie.
// @Summary Change password
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "New session"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Router /api/v1/admin/password [put]
func (h *HTTPEndpoint) ChangePassword(r *router.Request) (any, error) {
	var req ChangePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.ChangePassword(r.Context(), usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Client:          client(r),
	})
	if err != nil {
		return nil, err
	}

	return ChangePasswordResponse{LoginResponse: h.loginResponse(out)}, nil
}

// SetupTwoFactor starts TOTP enrollment.
// @Summary Start two-factor setup
// @Tags Two-factor
// @Accept json
// @Produce json
// @Param request body SetupTwoFactorRequest true "Current password"
// @Success 200 {object} router.successResponse{data=SetupTwoFactorResponse} "Secret to scan"
// @Failure 409 {object} router.errorResponse "Already enabled"
// @Router /api/v1/admin/2fa/setup [post]
func (h *HTTPEndpoint) SetupTwoFactor(r *router.Request) (any, error) {
	var req SetupTwoFactorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.SetupTwoFactor(r.Context(), usecase.SetupTwoFactorInput{CurrentPassword: req.CurrentPassword})
	if err != nil {
		return nil, err
	}

	return SetupTwoFactorResponse{Secret: out.Secret, OTPAuthURL: out.OTPAuthURL}, nil
}

func (h *HTTPEndpoint) EnableTwoFactor(r *router.Request) (any, error) {
	var req CodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.EnableTwoFactor(r.Context(), usecase.EnableTwoFactorInput{Code: req.Code, Client: client(r)})
	if err != nil {
		return nil, err
	}

	return BackupCodesResponse{BackupCodes: out.Codes}, nil
}

func (h *HTTPEndpoint) DisableTwoFactor(r *router.Request) (any, error) {
	var req DisableTwoFactorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.DisableTwoFactor(r.Context(), usecase.DisableTwoFactorInput{
		CurrentPassword: req.CurrentPassword,
		Code:            req.Code,
		Client:          client(r),
	})
}

func (h *HTTPEndpoint) RegenerateBackupCodes(r *router.Request) (any, error) {
	var req CodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.RegenerateBackupCodes(r.Context(), usecase.RegenerateBackupCodesInput{Code: req.Code, Client: client(r)})
	if err != nil {
		return nil, err
	}

	return BackupCodesResponse{BackupCodes: out.Codes}, nil
}

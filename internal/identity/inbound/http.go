package inbound

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/identity/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginTwoFactor(ctx context.Context, in usecase.LoginTwoFactorInput) (*usecase.LoginOutput, error)
	Session(ctx context.Context) (*usecase.SessionOutput, error)
	Logout(ctx context.Context) error

	GetProfile(ctx context.Context) (*usecase.Profile, error)
	UpdateProfile(ctx context.Context, in usecase.UpdateProfileInput) (*usecase.Profile, error)
	UpdateAvatar(ctx context.Context, in usecase.UpdateAvatarInput) (*usecase.Profile, error)
	ChangePassword(ctx context.Context, in usecase.ChangePasswordInput) (*usecase.LoginOutput, error)

	SetupTwoFactor(ctx context.Context, in usecase.SetupTwoFactorInput) (*usecase.SetupTwoFactorOutput, error)
	EnableTwoFactor(ctx context.Context, in usecase.EnableTwoFactorInput) (*usecase.BackupCodesOutput, error)
	DisableTwoFactor(ctx context.Context, in usecase.DisableTwoFactorInput) error
	RegenerateBackupCodes(ctx context.Context, in usecase.RegenerateBackupCodesInput) (*usecase.BackupCodesOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cookie session.Cookie) {
	end := &HTTPEndpoint{uc: uc, cookie: cookie}

	// Auth
	pub := r.Public()
	pub.POST("/api/v1/auth/login", end.Login)
	pub.GET("/api/v1/auth/session", end.Session)
	pub.POST("/api/v1/auth/logout", end.Logout)
	r.MFA().POST("/api/v1/auth/login/2fa", end.LoginTwoFactor)

	// Profile & password (need authenticated)
	r.GET("/api/v1/admin/profile", end.GetProfile)
	r.PUT("/api/v1/admin/profile", end.UpdateProfile)
	r.PUT("/api/v1/admin/profile/avatar", end.UpdateAvatar)
	r.PUT("/api/v1/admin/password", end.ChangePassword)

	// Two-factor (need authenticated)
	r.POST("/api/v1/admin/2fa/setup", end.SetupTwoFactor)
	r.POST("/api/v1/admin/2fa/enable", end.EnableTwoFactor)
	r.POST("/api/v1/admin/2fa/disable", end.DisableTwoFactor)
	r.POST("/api/v1/admin/2fa/backup-codes", end.RegenerateBackupCodes)
}

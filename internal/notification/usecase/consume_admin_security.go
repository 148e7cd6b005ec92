package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type ConsumeAdminSecurityInput struct {
	AdminID    int64  `validate:"required,gt=0"`
	Email      string `validate:"required,email"`
	FullName   string
	Change     string `validate:"required"`
	IP         string
	UserAgent  string
	OccurredAt int64
}

var securityDescriptions = map[string]string{
	event.SecurityPasswordChanged:    "The password of your back office account was changed.",
	event.SecurityTwoFactorEnabled:   "Two-factor authentication was turned on for your account. Keep your backup codes somewhere safe.",
	event.SecurityTwoFactorDisabled:  "Two-factor authentication was turned off for your account.",
	event.SecurityBackupCodesRenewed: "New backup codes were generated for your account. The previous codes no longer work.",
}

type securityView struct {
	FullName    string
	Description string
	When        string
	IP          string
	UserAgent   string
}

func (s *Usecase) ConsumeAdminSecurity(ctx context.Context, in ConsumeAdminSecurityInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAdminSecurity")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid admin security payload", "admin_id", in.AdminID, "error", err)
		return nil
	}

	desc, ok := securityDescriptions[in.Change]
	if !ok {
		slog.WarnContext(ctx, "unknown admin security change", "admin_id", in.AdminID, "change", in.Change)
		desc = "A security setting of your account was changed."
	}

	at := s.clock.Now()
	if in.OccurredAt > 0 {
		at = time.Unix(in.OccurredAt, 0)
	}

	name := in.FullName
	if name == "" {
		name = in.Email
	}

	s.send(ctx, viewAdminSecurity, entity.Email{
		Event:   entity.EventAdminSecurity,
		To:      in.Email,
		Subject: "Security alert for your " + s.site().CompanyName + " account",
	}, securityView{
		FullName:    name,
		Description: desc,
		When:        at.Format("02 Jan 2006 15:04 MST"),
		IP:          in.IP,
		UserAgent:   in.UserAgent,
	})

	return nil
}

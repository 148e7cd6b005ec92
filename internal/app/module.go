package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gomotor/internal/catalog"
	"github.com/shandysiswandi/gomotor/internal/identity"
	"github.com/shandysiswandi/gomotor/internal/lead"
	"github.com/shandysiswandi/gomotor/internal/notification"
	"github.com/shandysiswandi/gomotor/internal/site"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.catalog.enabled") {
		if err := catalog.New(catalog.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Enforcer:   a.casbin,
			Router:     a.router,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module catalog", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.lead.enabled") {
		if err := lead.New(lead.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Messaging:  a.messaging,
			Enforcer:   a.casbin,
			Router:     a.router,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module lead", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.identity.enabled") {
		uc, err := identity.New(identity.Dependency{
			DBConn:          a.dbConn,
			CacheConn:       a.cacheConn,
			Enforcer:        a.casbin,
			Router:          a.router,
			Messaging:       a.messaging,
			Storage:         a.storage,
			Denylist:        a.denylist,
			Cookie:          a.cookie,
			Config:          a.config,
			Instrument:      a.ins,
			UID:             a.uid,
			UUID:            a.uuid,
			Bcrypt:          a.bcrypt,
			Argon2ID:        a.argon2id,
			MFAEncryptor:    a.mfaEncryptor,
			MFARecoveryCode: a.mfaRecoveryCode,
			Clock:           a.clock,
			Totp:            a.totp,
			Validator:       a.validator,
			JWT:             a.jwt,
		})
		if err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
		a.identity = uc
	}

	if a.config.GetBool("modules.notification.enabled") {
		var ctx context.Context
		if !a.oneShot {
			ctx = a.ctx
		}

		if err := notification.New(notification.Dependency{
			Ctx:        ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Enforcer:   a.casbin,
			Router:     a.router,
			Goroutine:  a.goroutine,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.site.enabled") {
		if err := site.New(site.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module site", "error", err)
			os.Exit(1)
		}
	}
}

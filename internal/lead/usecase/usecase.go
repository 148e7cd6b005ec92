package usecase

import (
	"context"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetVehicleRef(ctx context.Context, id int64, statuses []string) (*entity.VehicleRef, error)

	CreateBuyLead(ctx context.Context, l entity.BuyLead) error
	ListBuyLeads(ctx context.Context, f entity.Filter) ([]entity.BuyLead, int64, error)
	GetBuyLead(ctx context.Context, id int64) (*entity.BuyLead, error)
	UpdateBuyLead(ctx context.Context, id int64, status entity.Status, notes string) (*entity.BuyLead, error)
	DeleteBuyLead(ctx context.Context, id int64) error

	CreateSellLead(ctx context.Context, l entity.SellLead) error
	ListSellLeads(ctx context.Context, f entity.Filter) ([]entity.SellLead, int64, error)
	GetSellLead(ctx context.Context, id int64) (*entity.SellLead, error)
	UpdateSellLead(ctx context.Context, id int64, status entity.Status, notes string) (*entity.SellLead, error)
	DeleteSellLead(ctx context.Context, id int64) error
}

type repoMessaging interface {
	PublishLeadCreated(ctx context.Context, msg event.LeadCreatedMessage) error
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

// Leads may only reference listings a visitor can still buy.
var leadableStatuses = []string{"available", "reserved"}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idempotency   idempotency.Idempotency
	storage       storage.Storage
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Storage       storage.Storage
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Enforcer      enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idempotency:   dep.Idempotency,
		storage:       dep.Storage,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("lead.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(strconv.FormatInt(clm.AdminID, 10), obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// fingerprint keys the dedupe guard. Only the HMAC reaches redis.
func (s *Usecase) fingerprint(kind string, parts ...string) (string, error) {
	norm := make([]string, 0, len(parts)+1)
	norm = append(norm, kind)
	for _, p := range parts {
		norm = append(norm, strings.ToLower(strings.TrimSpace(p)))
	}

	sum, err := s.hmac.Hash(strings.Join(norm, "|"))
	if err != nil {
		return "", err
	}

	return "lead:" + kind + ":" + hex.EncodeToString(sum), nil
}

func (s *Usecase) dedupeWindow() time.Duration {
	w := s.cfg.GetMinute("modules.lead.dedupe_window_minutes")
	if w <= 0 {
		return 10 * time.Minute
	}
	return w
}

// publish reports the new lead. The lead is already stored, so a broker
// failure is logged instead of failing the request.
func (s *Usecase) publish(ctx context.Context, msg event.LeadCreatedMessage) {
	if err := s.repoMessaging.PublishLeadCreated(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish lead created", "lead_id", msg.LeadID, "type", msg.Type, "error", err)
	}
}

package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateDelivery(ctx context.Context, d entity.Delivery) error
	UpdateDelivery(ctx context.Context, id int64, status entity.DeliveryStatus, attempts int32, lastError string) error
	ListDeliveries(ctx context.Context, f entity.DeliveryFilter) ([]entity.Delivery, int64, error)
}

type repoMail interface {
	Send(ctx context.Context, e entity.Email) error
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
	enforcer  enforcer
	views     *views
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
	Enforcer   enforcer
}

func New(dep Dependency) (*Usecase, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}

	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
		views:     v,
	}, nil
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// site is the company data every email layout shows.
func (s *Usecase) site() siteData {
	parts := []string{
		s.cfg.GetString("site.address.street"),
		s.cfg.GetString("site.address.locality"),
		s.cfg.GetString("site.address.region"),
		s.cfg.GetString("site.address.postal_code"),
	}
	address := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			address = append(address, p)
		}
	}

	return siteData{
		CompanyName:  s.cfg.GetString("site.name"),
		SupportEmail: s.cfg.GetString("site.email"),
		URL:          strings.TrimRight(s.cfg.GetString("site.url"), "/"),
		Address:      strings.Join(address, ", "),
	}
}

package usecase

import (
	"context"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/site/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	Ping(ctx context.Context) error
	ListPages(ctx context.Context, statuses []string, limit int32) ([]entity.PageRef, error)
}

type repoCache interface {
	Ping(ctx context.Context) error
}

type Usecase struct {
	repoDB    repoDB
	repoCache repoCache
	cfg       config.Config
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoCache  repoCache
	Config     config.Config
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoCache: dep.RepoCache,
		cfg:       dep.Config,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("site.usecase").Start(ctx, name)
}

func (s *Usecase) siteURL() string {
	return strings.TrimRight(s.cfg.GetString("site.url"), "/")
}

// absolute resolves a site-relative path against site.url.
func (s *Usecase) absolute(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return s.siteURL() + "/" + strings.TrimLeft(path, "/")
}

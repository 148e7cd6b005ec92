package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var errLeadNotFound = goerror.NewBusiness("Lead not found", goerror.CodeNotFound)

type ListLeadsInput struct {
	Status   string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Size     int
}

func (in ListLeadsInput) filter() (entity.Filter, error) {
	f := entity.Filter{
		Status:   entity.Status(strings.ToLower(strings.TrimSpace(in.Status))),
		Search:   strings.TrimSpace(in.Search),
		DateFrom: in.DateFrom,
		Page:     max(in.Page, 1),
		Size:     lo.Ternary(in.Size <= 0, defaultPageSize, min(in.Size, maxPageSize)),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, goerror.NewInvalidInput(nil, "status", "status must be one of new, contacted, qualified, won, lost")
	}
	if int64(f.Page-1)*int64(f.Size) > math.MaxInt32 {
		return f, goerror.NewInvalidInput(nil, "page", "page is too large")
	}
	if !in.DateTo.IsZero() {
		// "to" is a calendar day; include all of it.
		f.DateTo = in.DateTo.AddDate(0, 0, 1)
	}
	if !f.DateFrom.IsZero() && !in.DateTo.IsZero() && f.DateFrom.After(in.DateTo) {
		return f, goerror.NewInvalidInput(nil, "from", "from must not be after to")
	}
	return f, nil
}

type UpdateLeadInput struct {
	ID     int64
	Status string `validate:"required,oneof=new contacted qualified won lost"`
	Notes  string `validate:"max=5000"`
}

type ListBuyLeadsOutput struct {
	Page  int
	Size  int
	Total int64
	Leads []entity.BuyLead
}

func (s *Usecase) ListBuyLeads(ctx context.Context, in ListLeadsInput) (*ListBuyLeadsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListBuyLeads")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActRead); err != nil {
		return nil, err
	}

	f, err := in.filter()
	if err != nil {
		return nil, err
	}

	leads, total, err := s.repoDB.ListBuyLeads(ctx, f)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list buy leads", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListBuyLeadsOutput{Page: f.Page, Size: f.Size, Total: total, Leads: leads}, nil
}

func (s *Usecase) GetBuyLead(ctx context.Context, id int64) (*entity.BuyLead, error) {
	ctx, span := s.startSpan(ctx, "GetBuyLead")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActRead); err != nil {
		return nil, err
	}

	lead, err := s.repoDB.GetBuyLead(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get buy lead", "lead_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lead, nil
}

func (s *Usecase) UpdateBuyLead(ctx context.Context, in UpdateLeadInput) (*entity.BuyLead, error) {
	ctx, span := s.startSpan(ctx, "UpdateBuyLead")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	lead, err := s.repoDB.UpdateBuyLead(ctx, in.ID, entity.Status(in.Status), strings.TrimSpace(in.Notes))
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update buy lead", "lead_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "buy lead updated", "lead_id", in.ID, "status", in.Status, "admin_id", clm.AdminID)

	return lead, nil
}

func (s *Usecase) DeleteBuyLead(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "DeleteBuyLead")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActWrite)
	if err != nil {
		return err
	}

	err = s.repoDB.DeleteBuyLead(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete buy lead", "lead_id", id, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "buy lead deleted", "lead_id", id, "admin_id", clm.AdminID)

	return nil
}

type ListSellLeadsOutput struct {
	Page  int
	Size  int
	Total int64
	Leads []entity.SellLead
}

func (s *Usecase) ListSellLeads(ctx context.Context, in ListLeadsInput) (*ListSellLeadsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListSellLeads")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActRead); err != nil {
		return nil, err
	}

	f, err := in.filter()
	if err != nil {
		return nil, err
	}

	leads, total, err := s.repoDB.ListSellLeads(ctx, f)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list sell leads", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListSellLeadsOutput{Page: f.Page, Size: f.Size, Total: total, Leads: leads}, nil
}

func (s *Usecase) GetSellLead(ctx context.Context, id int64) (*entity.SellLead, error) {
	ctx, span := s.startSpan(ctx, "GetSellLead")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActRead); err != nil {
		return nil, err
	}

	lead, err := s.repoDB.GetSellLead(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get sell lead", "lead_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lead, nil
}

func (s *Usecase) UpdateSellLead(ctx context.Context, in UpdateLeadInput) (*entity.SellLead, error) {
	ctx, span := s.startSpan(ctx, "UpdateSellLead")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	lead, err := s.repoDB.UpdateSellLead(ctx, in.ID, entity.Status(in.Status), strings.TrimSpace(in.Notes))
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update sell lead", "lead_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "sell lead updated", "lead_id", in.ID, "status", in.Status, "admin_id", clm.AdminID)

	return lead, nil
}

func (s *Usecase) DeleteSellLead(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "DeleteSellLead")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermLeadLeads, constant.PermActWrite)
	if err != nil {
		return err
	}

	err = s.repoDB.DeleteSellLead(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return errLeadNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete sell lead", "lead_id", id, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "sell lead deleted", "lead_id", id, "admin_id", clm.AdminID)

	return nil
}

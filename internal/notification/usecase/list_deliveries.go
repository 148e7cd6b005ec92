package usecase

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListDeliveriesInput struct {
	Status string
	Page   int
	Size   int
}

type ListDeliveriesOutput struct {
	Page       int
	Size       int
	Total      int64
	Deliveries []entity.Delivery
}

func (s *Usecase) ListDeliveries(ctx context.Context, in ListDeliveriesInput) (*ListDeliveriesOutput, error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(strconv.FormatInt(clm.AdminID, 10), constant.PermNotificationDeliveries, constant.PermActRead)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	f := entity.DeliveryFilter{
		Status: entity.DeliveryStatus(strings.ToLower(strings.TrimSpace(in.Status))),
		Page:   max(in.Page, 1),
		Size:   lo.Ternary(in.Size <= 0, defaultPageSize, min(in.Size, maxPageSize)),
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, goerror.NewInvalidInput(nil, "status", "status must be one of queued, sent, failed")
	}
	if int64(f.Page-1)*int64(f.Size) > math.MaxInt32 {
		return nil, goerror.NewInvalidInput(nil, "page", "page is too large")
	}

	items, total, err := s.repoDB.ListDeliveries(ctx, f)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list deliveries", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListDeliveriesOutput{Page: f.Page, Size: f.Size, Total: total, Deliveries: items}, nil
}

package inbound

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/notification/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

type ucConsumer interface {
	ConsumeLeadCreated(ctx context.Context, in usecase.ConsumeLeadCreatedInput) error
	ConsumeAdminSecurity(ctx context.Context, in usecase.ConsumeAdminSecurityInput) error
}

type uc interface {
	ucConsumer

	ListDeliveries(ctx context.Context, in usecase.ListDeliveriesInput) (*usecase.ListDeliveriesOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/admin/notifications/deliveries", end.ListDeliveries)
}

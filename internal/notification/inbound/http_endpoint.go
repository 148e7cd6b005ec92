package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/notification/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListDeliveries lists recorded email deliveries, newest first.
// @Summary List email deliveries
// @Tags Notification
// @Security CookieAuth
// @Produce json
// @Param status query string false "queued, sent or failed"
// @Param page query int false "Page, from 1"
// @Param size query int false "Page size, max 100"
// @Success 200 {object} DeliveriesResponse
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/notifications/deliveries [get]
func (h *HTTPEndpoint) ListDeliveries(r *router.Request) (any, error) {
	page, err := r.GetQueryInt("page")
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt("size")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListDeliveries(r.Context(), usecase.ListDeliveriesInput{
		Status: r.GetQuery("status"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return nil, err
	}

	return DeliveriesResponse{
		Deliveries: lo.Map(out.Deliveries, toDeliveryResponse),
		total:      out.Total,
		size:       out.Size,
		page:       out.Page,
	}, nil
}

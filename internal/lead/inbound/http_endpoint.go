package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/lead/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

const dateLayout = "2006-01-02"

// HTTPEndpoint exposes the lead forms and their back office.
type HTTPEndpoint struct {
	uc uc
}

// CreateBuyLead stores an enquiry about buying.
// @Summary Submit buy lead
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body BuyLeadRequest true "Buy lead payload"
// @Success 201 {object} router.successResponse{data=LeadCreatedResponse} "Lead stored"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Lead already submitted"
// @Router /api/v1/leads/buy [post]
func (h *HTTPEndpoint) CreateBuyLead(r *router.Request) (any, error) {
	var req BuyLeadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = r.Referer()
	}

	out, err := h.uc.CreateBuyLead(r.Context(), usecase.CreateBuyLeadInput{
		VehicleID:        req.VehicleID,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		PreferredContact: req.PreferredContact,
		Message:          req.Message,
		WantsFinancing:   req.WantsFinancing,
		HasTradeIn:       req.HasTradeIn,
		Source:           source,
	})
	if err != nil {
		return nil, err
	}

	return LeadCreatedResponse{ID: out.ID}, nil
}

// CreateSellLead stores a request to sell a car to the dealership.
// @Summary Submit sell lead
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body SellLeadRequest true "Sell lead payload"
// @Success 201 {object} router.successResponse{data=LeadCreatedResponse} "Lead stored"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Lead already submitted"
// @Router /api/v1/leads/sell [post]
func (h *HTTPEndpoint) CreateSellLead(r *router.Request) (any, error) {
	var req SellLeadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.CreateSellLead(r.Context(), usecase.CreateSellLeadInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		MileageKM:   req.MileageKM,
		Condition:   req.Condition,
		AskingPrice: req.AskingPrice,
		VIN:         req.VIN,
		Message:     req.Message,
		Photos:      req.Photos,
	})
	if err != nil {
		return nil, err
	}

	return LeadCreatedResponse{ID: out.ID}, nil
}

// UploadLeadPhoto proxies a seller's photo to object storage.
// @Summary Upload lead photo
// @Tags Lead
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 201 {object} router.successResponse{data=PhotoResponse} "Photo stored"
// @Failure 400 {object} router.errorResponse "Invalid image"
// @Router /api/v1/uploads/lead-photos [post]
func (h *HTTPEndpoint) UploadLeadPhoto(r *router.Request) (any, error) {
	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	out, err := h.uc.UploadLeadPhoto(r.Context(), usecase.UploadPhotoInput{File: file})
	if err != nil {
		return nil, err
	}

	return PhotoResponse{URL: out.URL, Key: out.Key}, nil
}

func listInput(r *router.Request) (usecase.ListLeadsInput, error) {
	in := usecase.ListLeadsInput{Status: r.GetQuery("status"), Search: r.GetQuery("q")}

	var err error
	if in.DateFrom, err = r.GetQueryDate("from", dateLayout); err != nil {
		return in, err
	}
	if in.DateTo, err = r.GetQueryDate("to", dateLayout); err != nil {
		return in, err
	}
	if in.Page, err = r.GetQueryInt("page"); err != nil {
		return in, err
	}
	if in.Size, err = r.GetQueryInt("size"); err != nil {
		return in, err
	}

	return in, nil
}

func (h *HTTPEndpoint) ListBuyLeads(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListBuyLeads(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return BuyLeadsResponse{
		Leads:    lo.Map(out.Leads, func(l entity.BuyLead, _ int) BuyLeadResponse { return toBuyLeadResponse(l) }),
		pageMeta: pageMeta{total: out.Total, size: out.Size, page: out.Page},
	}, nil
}

func (h *HTTPEndpoint) GetBuyLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	lead, err := h.uc.GetBuyLead(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return toBuyLeadResponse(*lead), nil
}

func (h *HTTPEndpoint) UpdateBuyLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateLeadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	lead, err := h.uc.UpdateBuyLead(r.Context(), usecase.UpdateLeadInput{ID: id, Status: req.Status, Notes: req.Notes})
	if err != nil {
		return nil, err
	}

	return toBuyLeadResponse(*lead), nil
}

func (h *HTTPEndpoint) DeleteBuyLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DeleteBuyLead(r.Context(), id)
}

func (h *HTTPEndpoint) ListSellLeads(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListSellLeads(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return SellLeadsResponse{
		Leads:    lo.Map(out.Leads, func(l entity.SellLead, _ int) SellLeadResponse { return toSellLeadResponse(l) }),
		pageMeta: pageMeta{total: out.Total, size: out.Size, page: out.Page},
	}, nil
}

func (h *HTTPEndpoint) GetSellLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	lead, err := h.uc.GetSellLead(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return toSellLeadResponse(*lead), nil
}

func (h *HTTPEndpoint) UpdateSellLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateLeadRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	lead, err := h.uc.UpdateSellLead(r.Context(), usecase.UpdateLeadInput{ID: id, Status: req.Status, Notes: req.Notes})
	if err != nil {
		return nil, err
	}

	return toSellLeadResponse(*lead), nil
}

func (h *HTTPEndpoint) DeleteSellLead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DeleteSellLead(r.Context(), id)
}

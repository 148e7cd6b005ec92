package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/catalog/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

// HTTPEndpoint exposes the public catalog and its back office.
type HTTPEndpoint struct {
	uc uc
}

func listInput(r *router.Request) (usecase.ListVehiclesInput, error) {
	in := usecase.ListVehiclesInput{
		Search:       r.GetQuery("q"),
		Make:         r.GetQuery("make"),
		Model:        r.GetQuery("model"),
		BodyType:     r.GetQuery("body_type"),
		Fuel:         r.GetQuery("fuel"),
		Transmission: r.GetQuery("transmission"),
		Condition:    r.GetQuery("condition"),
		Status:       r.GetQuery("status"),
		Sort:         r.GetQuery("sort"),
	}

	var err error
	ints := []struct {
		key string
		dst *int
	}{
		{"year_min", &in.YearMin},
		{"year_max", &in.YearMax},
		{"mileage_max", &in.MileageMax},
		{"page", &in.Page},
		{"size", &in.Size},
	}
	for _, q := range ints {
		if *q.dst, err = r.GetQueryInt(q.key); err != nil {
			return in, err
		}
	}

	if in.PriceMin, err = r.GetQueryInt64("price_min"); err != nil {
		return in, err
	}
	if in.PriceMax, err = r.GetQueryInt64("price_max"); err != nil {
		return in, err
	}
	if in.Featured, err = r.GetQueryBool("featured"); err != nil {
		return in, err
	}

	return in, nil
}

func vehiclesResponse(out *usecase.ListVehiclesOutput) VehiclesResponse {
	return VehiclesResponse{
		Vehicles: lo.Map(out.Vehicles, func(v entity.Vehicle, _ int) VehicleResponse { return toVehicleResponse(v) }),
		total:    out.Total,
		size:     out.Size,
		page:     out.Page,
	}
}

// ListVehicles returns the public catalog.
// @Summary List vehicles
// @Description Filters, sorts and paginates vehicles visible to visitors.
// @Tags Catalog
// @Produce json
// @Param q query string false "Search title, make and model"
// @Param make query string false "Make"
// @Param body_type query string false "Body type"
// @Param fuel query string false "Fuel"
// @Param sort query string false "newest, price_asc, price_desc, year_desc or mileage_asc"
// @Param page query int false "Pagination page"
// @Param size query int false "Pagination size"
// @Success 200 {object} router.successResponse{data=VehiclesResponse} "Vehicle list"
// @Failure 400 {object} router.errorResponse "Invalid filter"
// @Router /api/v1/vehicles [get]
func (h *HTTPEndpoint) ListVehicles(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ListVehicles(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return vehiclesResponse(out), nil
}

// GetVehicle returns one public vehicle by slug.
// @Summary Vehicle detail
// @Tags Catalog
// @Produce json
// @Param slug path string true "Vehicle slug"
// @Success 200 {object} router.successResponse{data=VehicleResponse} "Vehicle"
// @Failure 404 {object} router.errorResponse "Vehicle not found"
// @Router /api/v1/vehicles/{slug} [get]
func (h *HTTPEndpoint) GetVehicle(r *router.Request) (any, error) {
	v, err := h.uc.GetVehicle(r.Context(), usecase.GetVehicleInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	return toVehicleResponse(*v), nil
}

// GetVehicleSEO returns page metadata and JSON-LD for a vehicle.
// @Summary Vehicle SEO metadata
// @Tags Catalog
// @Produce json
// @Param slug path string true "Vehicle slug"
// @Success 200 {object} router.successResponse{data=SEOResponse} "Metadata"
// @Failure 404 {object} router.errorResponse "Vehicle not found"
// @Router /api/v1/vehicles/{slug}/seo [get]
func (h *HTTPEndpoint) GetVehicleSEO(r *router.Request) (any, error) {
	seo, err := h.uc.GetVehicleSEO(r.Context(), usecase.GetVehicleInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	return SEOResponse{
		Title:        seo.Title,
		Description:  seo.Description,
		CanonicalURL: seo.CanonicalURL,
		OpenGraph:    seo.OpenGraph,
		JSONLD:       seo.JSONLD,
	}, nil
}

func (h *HTTPEndpoint) ListMakes(r *router.Request) (any, error) {
	makes, err := h.uc.ListMakes(r.Context())
	if err != nil {
		return nil, err
	}

	return MakesResponse{
		Makes: lo.Map(makes, func(m entity.MakeCount, _ int) MakeResponse {
			return MakeResponse{Make: m.Make, Count: m.Count}
		}),
	}, nil
}

// AdminListVehicles lists vehicles in every status.
// @Summary List vehicles (admin)
// @Tags Catalog, Admin
// @Security CookieAuth
// @Produce json
// @Param status query string false "draft, available, reserved or sold"
// @Success 200 {object} router.successResponse{data=VehiclesResponse} "Vehicle list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Router /api/v1/admin/vehicles [get]
func (h *HTTPEndpoint) AdminListVehicles(r *router.Request) (any, error) {
	in, err := listInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.AdminListVehicles(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return vehiclesResponse(out), nil
}

func (h *HTTPEndpoint) AdminGetVehicle(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	v, err := h.uc.AdminGetVehicle(r.Context(), usecase.AdminGetVehicleInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toVehicleResponse(*v), nil
}

func (req VehicleRequest) input() usecase.VehicleInput {
	return usecase.VehicleInput{
		VIN:          req.VIN,
		Title:        req.Title,
		Make:         req.Make,
		Model:        req.Model,
		Variant:      req.Variant,
		Year:         req.Year,
		Price:        req.Price,
		Currency:     req.Currency,
		MileageKM:    req.MileageKM,
		Fuel:         req.Fuel,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Condition:    req.Condition,
		Color:        req.Color,
		EngineCC:     req.EngineCC,
		Seats:        req.Seats,
		Description:  req.Description,
		Features:     req.Features,
		Status:       req.Status,
		Featured:     req.Featured,
	}
}

// CreateVehicle adds a listing. New listings start as draft unless a
// status is given.
// @Summary Create vehicle
// @Tags Catalog, Admin
// @Security CookieAuth
// @Accept json
// @Produce json
// @Param request body VehicleRequest true "Vehicle payload"
// @Success 201 {object} router.successResponse{data=VehicleResponse} "Vehicle created"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "VIN already registered"
// @Router /api/v1/admin/vehicles [post]
func (h *HTTPEndpoint) CreateVehicle(r *router.Request) (any, error) {
	var req VehicleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	v, err := h.uc.CreateVehicle(r.Context(), req.input())
	if err != nil {
		return nil, err
	}

	return VehicleCreatedResponse{toVehicleResponse(*v)}, nil
}

func (h *HTTPEndpoint) UpdateVehicle(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req VehicleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	v, err := h.uc.UpdateVehicle(r.Context(), usecase.UpdateVehicleInput{ID: id, VehicleInput: req.input()})
	if err != nil {
		return nil, err
	}

	return toVehicleResponse(*v), nil
}

func (h *HTTPEndpoint) UpdateVehicleStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req VehicleStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.UpdateVehicleStatus(r.Context(), usecase.UpdateVehicleStatusInput{ID: id, Status: req.Status})
}

func (h *HTTPEndpoint) DeleteVehicle(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DeleteVehicle(r.Context(), usecase.DeleteVehicleInput{ID: id})
}

// UploadVehicleImage appends a photo to the gallery.
// @Summary Upload vehicle image
// @Tags Catalog, Admin
// @Security CookieAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 201 {object} router.successResponse{data=ImageResponse} "Image stored"
// @Failure 400 {object} router.errorResponse "Invalid image"
// @Router /api/v1/admin/vehicles/{id}/images [post]
func (h *HTTPEndpoint) UploadVehicleImage(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := h.uc.UploadVehicleImage(r.Context(), usecase.UploadVehicleImageInput{VehicleID: id, File: file})
	if err != nil {
		return nil, err
	}

	return ImageCreatedResponse{toImageResponse(*img)}, nil
}

func (h *HTTPEndpoint) DeleteVehicleImage(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	imageID, err := r.GetParamInt64("image_id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DeleteVehicleImage(r.Context(), usecase.DeleteVehicleImageInput{VehicleID: id, ImageID: imageID})
}

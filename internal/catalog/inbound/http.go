package inbound

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/catalog/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

type uc interface {
	ListVehicles(ctx context.Context, in usecase.ListVehiclesInput) (*usecase.ListVehiclesOutput, error)
	GetVehicle(ctx context.Context, in usecase.GetVehicleInput) (*entity.Vehicle, error)
	GetVehicleSEO(ctx context.Context, in usecase.GetVehicleInput) (*usecase.VehicleSEO, error)
	ListMakes(ctx context.Context) ([]entity.MakeCount, error)

	AdminListVehicles(ctx context.Context, in usecase.ListVehiclesInput) (*usecase.ListVehiclesOutput, error)
	AdminGetVehicle(ctx context.Context, in usecase.AdminGetVehicleInput) (*entity.Vehicle, error)
	CreateVehicle(ctx context.Context, in usecase.VehicleInput) (*entity.Vehicle, error)
	UpdateVehicle(ctx context.Context, in usecase.UpdateVehicleInput) (*entity.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, in usecase.UpdateVehicleStatusInput) error
	DeleteVehicle(ctx context.Context, in usecase.DeleteVehicleInput) error
	UploadVehicleImage(ctx context.Context, in usecase.UploadVehicleImageInput) (*entity.VehicleImage, error)
	DeleteVehicleImage(ctx context.Context, in usecase.DeleteVehicleImageInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Public catalog
	pub := r.Public()
	pub.GET("/api/v1/vehicles", end.ListVehicles)
	pub.GET("/api/v1/vehicles/:slug", end.GetVehicle)
	pub.GET("/api/v1/vehicles/:slug/seo", end.GetVehicleSEO)
	pub.GET("/api/v1/makes", end.ListMakes)

	// Back office (need authenticated & authorization)
	r.GET("/api/v1/admin/vehicles", end.AdminListVehicles)
	r.POST("/api/v1/admin/vehicles", end.CreateVehicle)
	r.GET("/api/v1/admin/vehicles/:id", end.AdminGetVehicle)
	r.PUT("/api/v1/admin/vehicles/:id", end.UpdateVehicle)
	r.DELETE("/api/v1/admin/vehicles/:id", end.DeleteVehicle)
	r.PATCH("/api/v1/admin/vehicles/:id/status", end.UpdateVehicleStatus)
	r.POST("/api/v1/admin/vehicles/:id/images", end.UploadVehicleImage)
	r.DELETE("/api/v1/admin/vehicles/:id/images/:image_id", end.DeleteVehicleImage)
}

package inbound

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/lead/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
)

type uc interface {
	CreateBuyLead(ctx context.Context, in usecase.CreateBuyLeadInput) (*usecase.CreateLeadOutput, error)
	CreateSellLead(ctx context.Context, in usecase.CreateSellLeadInput) (*usecase.CreateLeadOutput, error)
	UploadLeadPhoto(ctx context.Context, in usecase.UploadPhotoInput) (*usecase.UploadPhotoOutput, error)

	ListBuyLeads(ctx context.Context, in usecase.ListLeadsInput) (*usecase.ListBuyLeadsOutput, error)
	GetBuyLead(ctx context.Context, id int64) (*entity.BuyLead, error)
	UpdateBuyLead(ctx context.Context, in usecase.UpdateLeadInput) (*entity.BuyLead, error)
	DeleteBuyLead(ctx context.Context, id int64) error

	ListSellLeads(ctx context.Context, in usecase.ListLeadsInput) (*usecase.ListSellLeadsOutput, error)
	GetSellLead(ctx context.Context, id int64) (*entity.SellLead, error)
	UpdateSellLead(ctx context.Context, in usecase.UpdateLeadInput) (*entity.SellLead, error)
	DeleteSellLead(ctx context.Context, id int64) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Website forms
	pub := r.Public()
	pub.POST("/api/v1/leads/buy", end.CreateBuyLead)
	pub.POST("/api/v1/leads/sell", end.CreateSellLead)
	pub.POST("/api/v1/uploads/lead-photos", end.UploadLeadPhoto)

	// Back office (need authenticated & authorization)
	r.GET("/api/v1/admin/leads/buy", end.ListBuyLeads)
	r.GET("/api/v1/admin/leads/buy/:id", end.GetBuyLead)
	r.PATCH("/api/v1/admin/leads/buy/:id", end.UpdateBuyLead)
	r.DELETE("/api/v1/admin/leads/buy/:id", end.DeleteBuyLead)

	r.GET("/api/v1/admin/leads/sell", end.ListSellLeads)
	r.GET("/api/v1/admin/leads/sell/:id", end.GetSellLead)
	r.PATCH("/api/v1/admin/leads/sell/:id", end.UpdateSellLead)
	r.DELETE("/api/v1/admin/leads/sell/:id", end.DeleteSellLead)
}

package store

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/handler"
	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type StoreService interface {
	GetStore(ctx context.Context, id uuid.UUID) (*model.Store, error)
	UpdateStore(ctx context.Context, id uuid.UUID, req *model.UpdateStoreRequest) (*model.Store, error)
	ResolveSlug(ctx context.Context, slug string) (*model.Store, error)
}

type Handler struct {
	service StoreService
}

func NewHandler(service StoreService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	store := r.Group("/store")
	{
		store.GET("", h.GetStore)
		store.PUT("", h.UpdateStore)
	}
}

func (h *Handler) GetStore(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	store, err := h.service.GetStore(c.Request.Context(), storeID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, store)
}

func (h *Handler) UpdateStore(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	store, err := h.service.UpdateStore(c.Request.Context(), storeID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, store)
}

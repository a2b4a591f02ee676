package catalog

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/handler"
	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type CatalogService interface {
	CreateService(ctx context.Context, storeID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error)
	GetService(ctx context.Context, storeID, serviceID uuid.UUID) (*model.Service, error)
	ListServices(ctx context.Context, storeID uuid.UUID) ([]*model.Service, error)
	UpdateService(ctx context.Context, storeID, serviceID uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error)
	DeleteService(ctx context.Context, storeID, serviceID uuid.UUID) error
}

type StoreResolver interface {
	ResolveSlug(ctx context.Context, slug string) (*model.Store, error)
}

type Handler struct {
	service CatalogService
	stores  StoreResolver
}

func NewHandler(service CatalogService, stores StoreResolver) *Handler {
	return &Handler{service: service, stores: stores}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.ListPublicServices)
}

func (h *Handler) ListPublicServices(c *gin.Context) {
	store, err := h.stores.ResolveSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	services, err := h.service.ListServices(c.Request.Context(), store.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) CreateService(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	service, err := h.service.CreateService(c.Request.Context(), storeID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, service)
}

func (h *Handler) ListServices(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	services, err := h.service.ListServices(c.Request.Context(), storeID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) GetService(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid service id"))
		return
	}

	service, err := h.service.GetService(c.Request.Context(), storeID, serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, service)
}

func (h *Handler) UpdateService(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid service id"))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	service, err := h.service.UpdateService(c.Request.Context(), storeID, serviceID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, service)
}

func (h *Handler) DeleteService(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid service id"))
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), storeID, serviceID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

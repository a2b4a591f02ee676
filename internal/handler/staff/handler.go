package staff

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/handler"
	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type StaffService interface {
	CreateStaff(ctx context.Context, storeID uuid.UUID, req *model.CreateStaffRequest) (*model.Staff, error)
	GetStaff(ctx context.Context, storeID, staffID uuid.UUID) (*model.Staff, error)
	ListStaff(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error)
	UpdateStaff(ctx context.Context, storeID, staffID uuid.UUID, req *model.UpdateStaffRequest) (*model.Staff, error)
	DeleteStaff(ctx context.Context, storeID, staffID uuid.UUID) error
}

type StoreResolver interface {
	ResolveSlug(ctx context.Context, slug string) (*model.Store, error)
}

type Handler struct {
	service StaffService
	stores  StoreResolver
}

func NewHandler(service StaffService, stores StoreResolver) *Handler {
	return &Handler{service: service, stores: stores}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	staff := r.Group("/staff")
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.PUT("/:id", h.UpdateStaff)
		staff.DELETE("/:id", h.DeleteStaff)
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/staff", h.ListPublicStaff)
}

// ListPublicStaff is the unauthenticated staff listing customers use
// to pick a staff member before querying availability.
func (h *Handler) ListPublicStaff(c *gin.Context) {
	store, err := h.stores.ResolveSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	staff, err := h.service.ListStaff(c.Request.Context(), store.ID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	staff, err := h.service.CreateStaff(c.Request.Context(), storeID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, staff)
}

func (h *Handler) ListStaff(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	staff, err := h.service.ListStaff(c.Request.Context(), storeID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) GetStaff(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid staff id"))
		return
	}

	staff, err := h.service.GetStaff(c.Request.Context(), storeID, staffID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid staff id"))
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	staff, err := h.service.UpdateStaff(c.Request.Context(), storeID, staffID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid staff id"))
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), storeID, staffID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

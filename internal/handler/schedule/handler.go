package schedule

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/handler"
	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type ScheduleService interface {
	ReplaceWorkingHours(ctx context.Context, storeID, staffID uuid.UUID, req *model.ReplaceWorkingHoursRequest) ([]*model.WorkingHourRule, error)
	ListWorkingHours(ctx context.Context, storeID, staffID uuid.UUID) ([]*model.WorkingHourRule, error)
	CreateBlock(ctx context.Context, storeID uuid.UUID, req *model.CreateBlockRequest) (*model.AvailabilityBlock, error)
	ListBlocks(ctx context.Context, storeID uuid.UUID) ([]*model.AvailabilityBlock, error)
	DeleteBlock(ctx context.Context, storeID, blockID uuid.UUID) error
}

type Handler struct {
	service ScheduleService
}

func NewHandler(service ScheduleService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/staff/:id/working-hours", h.ListWorkingHours)
	r.PUT("/staff/:id/working-hours", h.ReplaceWorkingHours)

	blocks := r.Group("/blocks")
	{
		blocks.POST("", h.CreateBlock)
		blocks.GET("", h.ListBlocks)
		blocks.DELETE("/:id", h.DeleteBlock)
	}
}

// ReplaceWorkingHours swaps the staff member's whole weekly rule set in
// one call. Partial edits are not supported; the client always sends
// the full week.
func (h *Handler) ReplaceWorkingHours(c *gin.Context) {
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

	var req model.ReplaceWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rules, err := h.service.ReplaceWorkingHours(c.Request.Context(), storeID, staffID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, rules)
}

func (h *Handler) ListWorkingHours(c *gin.Context) {
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

	rules, err := h.service.ListWorkingHours(c.Request.Context(), storeID, staffID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, rules)
}

func (h *Handler) CreateBlock(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	block, err := h.service.CreateBlock(c.Request.Context(), storeID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, block)
}

func (h *Handler) ListBlocks(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	blocks, err := h.service.ListBlocks(c.Request.Context(), storeID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, blocks)
}

func (h *Handler) DeleteBlock(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid block id"))
		return
	}

	if err := h.service.DeleteBlock(c.Request.Context(), storeID, blockID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

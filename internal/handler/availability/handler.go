package availability

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/config"
	"github.com/agendaly/booking-api/internal/service/availability"
	"github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, req *availability.SlotsRequest) ([]string, error)
}

type Handler struct {
	service  AvailabilityService
	defaults config.BookingConfig
}

func NewHandler(service AvailabilityService, defaults config.BookingConfig) *Handler {
	return &Handler{service: service, defaults: defaults}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailability)
}

// GetAvailability lists the bookable start times for one staff member
// on one store-local date.
func (h *Handler) GetAvailability(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid staff_id"))
		return
	}

	serviceMinutes, err := strconv.Atoi(c.Query("service_minutes"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid service_minutes"))
		return
	}

	req := &availability.SlotsRequest{
		StoreSlug:      c.Param("slug"),
		StaffID:        staffID,
		Date:           c.Query("date"),
		ServiceMinutes: serviceMinutes,
		StepMinutes:    h.defaults.StepMinutes,
		LeadMinutes:    h.defaults.LeadMinutes,
		BufferMinutes:  h.defaults.BufferMinutes,
	}

	if err := overrideInt(c, "step_minutes", &req.StepMinutes); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := overrideInt(c, "lead_minutes", &req.LeadMinutes); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if err := overrideInt(c, "buffer_after", &req.BufferMinutes); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{
		"date":  req.Date,
		"slots": slots,
	})
}

func overrideInt(c *gin.Context, name string, dst *int) error {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Validation("invalid " + name)
	}
	*dst = v
	return nil
}

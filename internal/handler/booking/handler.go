package booking

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/config"
	"github.com/agendaly/booking-api/internal/handler"
	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/service/booking"
	"github.com/agendaly/booking-api/pkg/errors"
	"github.com/agendaly/booking-api/pkg/httputil"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *booking.BookingRequest) (*booking.BookingConfirmation, error)
	ListAppointmentsForDay(ctx context.Context, store *model.Store, date string) ([]*model.Appointment, error)
	CancelAppointment(ctx context.Context, storeID, appointmentID uuid.UUID, reason string) error
}

type StoreService interface {
	GetStore(ctx context.Context, id uuid.UUID) (*model.Store, error)
}

type Handler struct {
	service  BookingService
	stores   StoreService
	defaults config.BookingConfig
}

func NewHandler(service BookingService, stores StoreService, defaults config.BookingConfig) *Handler {
	return &Handler{service: service, stores: stores, defaults: defaults}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}

type createBookingRequest struct {
	StaffID       uuid.UUID `json:"staff_id" binding:"required"`
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	Date          string    `json:"date" binding:"required,civildate"`
	Time          string    `json:"time" binding:"required,hhmm"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone" binding:"required"`
}

// CreateBooking commits a customer booking for the store named in the
// URL. The slot engine defaults (step, lead, buffer) are server-side;
// customers cannot loosen them.
func (h *Handler) CreateBooking(c *gin.Context) {
	var body createBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	confirmation, err := h.service.CreateBooking(c.Request.Context(), &booking.BookingRequest{
		StoreSlug:     c.Param("slug"),
		StaffID:       body.StaffID,
		ServiceID:     body.ServiceID,
		Date:          body.Date,
		Time:          body.Time,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		StepMinutes:   h.defaults.StepMinutes,
		LeadMinutes:   h.defaults.LeadMinutes,
		BufferMinutes: h.defaults.BufferMinutes,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, confirmation)
}

// ListAppointments returns the dashboard day view for the owner's store.
func (h *Handler) ListAppointments(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	store, err := h.stores.GetStore(c.Request.Context(), storeID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.service.ListAppointmentsForDay(c.Request.Context(), store, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	storeID, err := handler.StoreID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment id"))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), storeID, appointmentID, req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"cancelled": true})
}

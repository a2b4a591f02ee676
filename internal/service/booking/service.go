package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	"github.com/agendaly/booking-api/internal/schedule"
	"github.com/agendaly/booking-api/internal/service/availability"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

const maxCustomerNameLen = 80

// StoreResolver resolves a public slug to its store.
type StoreResolver interface {
	ResolveSlug(ctx context.Context, slug string) (*model.Store, error)
}

// ShiftResolver resolves a staff member's open shifts for a local date.
// The booking path shares this with availability so the two can never
// disagree on working hours.
type ShiftResolver interface {
	OpenShifts(ctx context.Context, storeID, staffID uuid.UUID, date string, loc *time.Location) ([]schedule.Interval, error)
}

type Service struct {
	stores       StoreResolver
	shifts       ShiftResolver
	staff        repository.StaffRepository
	services     repository.ServiceRepository
	appointments repository.AppointmentRepository
	blocks       repository.BlockRepository
	tx           repository.TxRunner
	now          func() time.Time
}

func NewService(
	stores StoreResolver,
	shifts ShiftResolver,
	staff repository.StaffRepository,
	services repository.ServiceRepository,
	appointments repository.AppointmentRepository,
	blocks repository.BlockRepository,
	tx repository.TxRunner,
) *Service {
	return &Service{
		stores:       stores,
		shifts:       shifts,
		staff:        staff,
		services:     services,
		appointments: appointments,
		blocks:       blocks,
		tx:           tx,
		now:          time.Now,
	}
}

// BookingRequest carries one booking attempt.
type BookingRequest struct {
	StoreSlug     string
	StaffID       uuid.UUID
	ServiceID     uuid.UUID
	Date          string // YYYY-MM-DD, store-local
	Time          string // HH:MM, store-local
	CustomerName  string
	CustomerPhone string
	BufferMinutes int
	LeadMinutes   int
	StepMinutes   int
}

// BookingConfirmation is what the customer gets back on success.
type BookingConfirmation struct {
	Appointment *model.Appointment `json:"appointment"`
	Store       *model.Store       `json:"store"`
	Staff       *model.Staff       `json:"staff"`
	Service     *model.Service     `json:"service"`
	LocalTime   string             `json:"local_time"`
}

func normalizePhone(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 9 && digits <= 16
}

func (r *BookingRequest) validate() error {
	if r.StoreSlug == "" {
		return apperrors.Validation("missing store slug")
	}
	if r.StaffID == uuid.Nil {
		return apperrors.Validation("missing staff id")
	}
	if r.ServiceID == uuid.Nil {
		return apperrors.Validation("missing service id")
	}
	if !schedule.ValidDate(r.Date) {
		return apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}
	if !schedule.ValidHHMM(r.Time) {
		return apperrors.Validation("invalid time, expected HH:MM")
	}
	if r.BufferMinutes < 0 {
		return apperrors.Validation("invalid buffer minutes")
	}
	if r.LeadMinutes < 0 {
		return apperrors.Validation("invalid lead minutes")
	}
	if r.StepMinutes <= 0 || r.StepMinutes > 60 {
		return apperrors.Validation("invalid step minutes")
	}

	r.CustomerName = strings.TrimSpace(r.CustomerName)
	if r.CustomerName == "" {
		return apperrors.Validation("customer name is required")
	}
	if len(r.CustomerName) > maxCustomerNameLen {
		return apperrors.Validation("customer name too long")
	}

	r.CustomerPhone = normalizePhone(r.CustomerPhone)
	if r.CustomerPhone == "" {
		return apperrors.Validation("customer contact is required")
	}
	if !validPhone(r.CustomerPhone) {
		return apperrors.Validation("customer contact is not a valid phone number")
	}

	// grid alignment: the requested minute must sit on the step grid
	minute := int(r.Time[3]-'0')*10 + int(r.Time[4]-'0')
	if minute%r.StepMinutes != 0 {
		return apperrors.Validation(fmt.Sprintf("time must align to the %d-minute grid", r.StepMinutes))
	}

	return nil
}

// CreateBooking validates the request and commits the appointment. The
// occupancy check runs again inside the transaction, after the staff row
// lock, so two clients racing for the same slot cannot both observe it
// free; the table's exclusion constraint backs the lock up. Either the
// appointment row is persisted whole or nothing is.
func (s *Service) CreateBooking(ctx context.Context, req *BookingRequest) (*BookingConfirmation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	store, err := s.stores.ResolveSlug(ctx, req.StoreSlug)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("invalid store timezone %q: %w", store.Timezone, err))
	}

	staff, err := s.staff.GetForStore(ctx, store.ID, req.StaffID)
	if err != nil {
		return nil, err
	}
	svc, err := s.services.GetForStore(ctx, store.ID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.DurationMinutes <= 0 || svc.DurationMinutes > model.MaxServiceMinutes {
		return nil, apperrors.Validation("service duration out of range")
	}

	startAt, err := schedule.LocalToInstant(req.Date, req.Time, loc)
	if err != nil {
		return nil, apperrors.Validation("invalid date or time")
	}
	occupyEnd := schedule.AddMinutes(startAt, svc.DurationMinutes+req.BufferMinutes)
	requested := schedule.Interval{Start: startAt, End: occupyEnd}

	minStartAllowed := schedule.AddMinutes(s.now(), req.LeadMinutes)
	if startAt.Before(minStartAllowed) {
		return nil, apperrors.Validation(fmt.Sprintf("bookings require %d minutes notice", req.LeadMinutes))
	}

	shifts, err := s.shifts.OpenShifts(ctx, store.ID, req.StaffID, req.Date, loc)
	if err != nil {
		return nil, err
	}
	if !fitsInAnyShift(requested, shifts) {
		return nil, apperrors.Conflict("requested time is outside working hours")
	}

	window, err := schedule.DayWindow(req.Date, loc)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}

	appointment := &model.Appointment{
		StoreID:            store.ID,
		StaffID:            staff.ID,
		ServiceID:          &svc.ID,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		StartAt:            startAt,
		EndAt:              schedule.AddMinutes(startAt, svc.DurationMinutes),
		BufferAfterMinutes: req.BufferMinutes,
		Status:             model.AppointmentStatusConfirmed,
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.staff.LockTx(ctx, tx, staff.ID); err != nil {
			return err
		}

		// re-derive occupancy at commit time; anything committed by a
		// competing booking is visible once the lock is held
		existing, err := s.appointments.ListConfirmedForWindowTx(ctx, tx, store.ID, staff.ID, window.Start, window.End)
		if err != nil {
			return apperrors.Internal(err)
		}
		if requested.OverlapsAny(availability.BusyIntervals(existing)) {
			return apperrors.Conflict("time slot already taken")
		}

		blocks, err := s.blocks.ListForWindowTx(ctx, tx, store.ID, staff.ID, window.Start, window.End)
		if err != nil {
			return apperrors.Internal(err)
		}
		if requested.OverlapsAny(availability.BlockIntervals(blocks)) {
			return apperrors.Conflict("time slot is blocked")
		}

		return s.appointments.CreateTx(ctx, tx, appointment)
	})
	if err != nil {
		return nil, err
	}

	return &BookingConfirmation{
		Appointment: appointment,
		Store:       store,
		Staff:       staff,
		Service:     svc,
		LocalTime:   schedule.FormatLocal(appointment.StartAt, loc),
	}, nil
}

func fitsInAnyShift(requested schedule.Interval, shifts []schedule.Interval) bool {
	for _, shift := range shifts {
		if !requested.Start.Before(shift.Start) && !requested.End.After(shift.End) {
			return true
		}
	}
	return false
}

// ListAppointmentsForDay returns a store's appointments for one local
// date, cancelled included (dashboard history view).
func (s *Service) ListAppointmentsForDay(ctx context.Context, store *model.Store, date string) ([]*model.Appointment, error) {
	if !schedule.ValidDate(date) {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}
	loc, err := time.LoadLocation(store.Timezone)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("invalid store timezone %q: %w", store.Timezone, err))
	}
	window, err := schedule.DayWindow(date, loc)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}

	appointments, err := s.appointments.ListForDay(ctx, store.ID, window.Start, window.End)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// CancelAppointment flips a confirmed appointment to cancelled. The row
// stays; only confirmed rows occupy time, so the slot frees immediately.
func (s *Service) CancelAppointment(ctx context.Context, storeID, appointmentID uuid.UUID, reason string) error {
	return s.appointments.Cancel(ctx, storeID, appointmentID, reason)
}

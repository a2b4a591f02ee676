package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
	"github.com/agendaly/booking-api/internal/repository"
	"github.com/agendaly/booking-api/internal/schedule"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

// StoreResolver resolves a public slug to its store.
type StoreResolver interface {
	ResolveSlug(ctx context.Context, slug string) (*model.Store, error)
}

type Service struct {
	stores       StoreResolver
	staff        repository.StaffRepository
	hours        repository.WorkingHourRepository
	appointments repository.AppointmentRepository
	blocks       repository.BlockRepository
	now          func() time.Time
}

func NewService(
	stores StoreResolver,
	staff repository.StaffRepository,
	hours repository.WorkingHourRepository,
	appointments repository.AppointmentRepository,
	blocks repository.BlockRepository,
) *Service {
	return &Service{
		stores:       stores,
		staff:        staff,
		hours:        hours,
		appointments: appointments,
		blocks:       blocks,
		now:          time.Now,
	}
}

// SlotsRequest carries the parameters of one availability query.
type SlotsRequest struct {
	StoreSlug      string
	StaffID        uuid.UUID
	Date           string // YYYY-MM-DD, store-local
	ServiceMinutes int
	StepMinutes    int
	LeadMinutes    int
	BufferMinutes  int
}

func (r *SlotsRequest) validate() error {
	if r.StoreSlug == "" {
		return apperrors.Validation("missing store slug")
	}
	if r.StaffID == uuid.Nil {
		return apperrors.Validation("missing staff id")
	}
	if !schedule.ValidDate(r.Date) {
		return apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}
	if r.ServiceMinutes <= 0 || r.ServiceMinutes > model.MaxServiceMinutes {
		return apperrors.Validation("invalid service duration")
	}
	if r.StepMinutes <= 0 || r.StepMinutes > 60 {
		return apperrors.Validation("invalid step minutes")
	}
	if r.LeadMinutes < 0 {
		return apperrors.Validation("invalid lead minutes")
	}
	if r.BufferMinutes < 0 {
		return apperrors.Validation("invalid buffer minutes")
	}
	return nil
}

// GetAvailableSlots derives the bookable slot list for one staff member
// and date. Every call re-reads working hours, appointments and blocks;
// nothing on this path is cached, which is what keeps the listing
// consistent with a booking committed a moment earlier.
func (s *Service) GetAvailableSlots(ctx context.Context, req *SlotsRequest) ([]string, error) {
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

	if _, err := s.staff.GetForStore(ctx, store.ID, req.StaffID); err != nil {
		return nil, err
	}

	shifts, err := s.OpenShifts(ctx, store.ID, req.StaffID, req.Date, loc)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		// closed day: an empty list, not an error
		return []string{}, nil
	}

	busy, blocked, err := s.Occupancy(ctx, store.ID, req.StaffID, req.Date, loc)
	if err != nil {
		return nil, err
	}

	return schedule.GenerateSlots(shifts, busy, blocked, loc, schedule.SlotParams{
		ServiceMinutes: req.ServiceMinutes,
		BufferMinutes:  req.BufferMinutes,
		StepMinutes:    req.StepMinutes,
		LeadMinutes:    req.LeadMinutes,
		Now:            s.now(),
	}), nil
}

// OpenShifts resolves the staff member's open shift intervals for a local
// date. No rules, or all shifts closed, yields an empty slice: absence
// means closed, the server never fabricates a default schedule.
func (s *Service) OpenShifts(ctx context.Context, storeID, staffID uuid.UUID, date string, loc *time.Location) ([]schedule.Interval, error) {
	weekday, err := schedule.LocalWeekday(date, loc)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}

	rules, err := s.hours.ListForWeekday(ctx, storeID, staffID, int(weekday))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	open := make([]schedule.Shift, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsOpen {
			continue
		}
		open = append(open, schedule.Shift{Start: rule.StartTime, End: rule.EndTime})
	}

	shifts, err := schedule.ShiftIntervals(date, loc, open)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return shifts, nil
}

// Occupancy aggregates the staff member's busy intervals for the local
// day: confirmed appointments extended by their snapshotted buffer, and
// blocks that are store-wide or scoped to this staff member. Both sets
// are read fresh on every call.
func (s *Service) Occupancy(ctx context.Context, storeID, staffID uuid.UUID, date string, loc *time.Location) (busy, blocked []schedule.Interval, err error) {
	window, err := schedule.DayWindow(date, loc)
	if err != nil {
		return nil, nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}

	appointments, err := s.appointments.ListConfirmedForWindow(ctx, storeID, staffID, window.Start, window.End)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	blocks, err := s.blocks.ListForWindow(ctx, storeID, staffID, window.Start, window.End)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	return BusyIntervals(appointments), BlockIntervals(blocks), nil
}

// BusyIntervals expands appointments by their booking-time buffer
// snapshot. Later edits to a service's buffer never move historical
// occupancy.
func BusyIntervals(appointments []*model.Appointment) []schedule.Interval {
	busy := make([]schedule.Interval, 0, len(appointments))
	for _, a := range appointments {
		busy = append(busy, schedule.Interval{Start: a.StartAt, End: a.OccupiedUntil()})
	}
	return busy
}

func BlockIntervals(blocks []*model.AvailabilityBlock) []schedule.Interval {
	blocked := make([]schedule.Interval, 0, len(blocks))
	for _, b := range blocks {
		blocked = append(blocked, schedule.Interval{Start: b.StartAt, End: b.EndAt})
	}
	return blocked
}

package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

type fakeStores struct {
	store *model.Store
	err   error
}

func (f *fakeStores) ResolveSlug(ctx context.Context, slug string) (*model.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.store, nil
}

type fakeStaff struct {
	staff *model.Staff
	err   error
}

func (f *fakeStaff) Create(ctx context.Context, staff *model.Staff) error { return nil }
func (f *fakeStaff) GetForStore(ctx context.Context, storeID, staffID uuid.UUID) (*model.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.staff, nil
}
func (f *fakeStaff) List(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error) {
	return nil, nil
}
func (f *fakeStaff) Update(ctx context.Context, staff *model.Staff) error        { return nil }
func (f *fakeStaff) Delete(ctx context.Context, storeID, staffID uuid.UUID) error { return nil }
func (f *fakeStaff) LockTx(ctx context.Context, tx *sqlx.Tx, staffID uuid.UUID) error {
	return nil
}

type fakeHours struct {
	rules []*model.WorkingHourRule
}

func (f *fakeHours) ReplaceForStaff(ctx context.Context, storeID, staffID uuid.UUID, rules []*model.WorkingHourRule) error {
	return nil
}
func (f *fakeHours) ListForStaff(ctx context.Context, storeID, staffID uuid.UUID) ([]*model.WorkingHourRule, error) {
	return f.rules, nil
}
func (f *fakeHours) ListForWeekday(ctx context.Context, storeID, staffID uuid.UUID, weekday int) ([]*model.WorkingHourRule, error) {
	out := make([]*model.WorkingHourRule, 0)
	for _, r := range f.rules {
		if r.Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAppointments struct {
	appointments []*model.Appointment
}

func (f *fakeAppointments) CreateTx(ctx context.Context, tx *sqlx.Tx, a *model.Appointment) error {
	return nil
}
func (f *fakeAppointments) GetForStore(ctx context.Context, storeID, id uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) ListForDay(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointments) ListConfirmedForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointments) ListConfirmedForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointments) Cancel(ctx context.Context, storeID, id uuid.UUID, reason string) error {
	return nil
}

type fakeBlocks struct {
	blocks []*model.AvailabilityBlock
}

func (f *fakeBlocks) Create(ctx context.Context, b *model.AvailabilityBlock) error { return nil }
func (f *fakeBlocks) List(ctx context.Context, storeID uuid.UUID) ([]*model.AvailabilityBlock, error) {
	return f.blocks, nil
}
func (f *fakeBlocks) Delete(ctx context.Context, storeID, blockID uuid.UUID) error { return nil }
func (f *fakeBlocks) ListForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error) {
	return f.blocks, nil
}
func (f *fakeBlocks) ListForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error) {
	return f.blocks, nil
}

func mondayRules(storeID, staffID uuid.UUID) []*model.WorkingHourRule {
	return []*model.WorkingHourRule{
		{StoreID: storeID, StaffID: staffID, Weekday: 1, Position: 1, IsOpen: true, StartTime: "09:00", EndTime: "13:00"},
		{StoreID: storeID, StaffID: staffID, Weekday: 1, Position: 2, IsOpen: true, StartTime: "14:00", EndTime: "18:00"},
	}
}

func testService(stores *fakeStores, staff *fakeStaff, hours *fakeHours, appts *fakeAppointments, blocks *fakeBlocks, now time.Time) *Service {
	s := NewService(stores, staff, hours, appts, blocks)
	s.now = func() time.Time { return now }
	return s
}

func localInstant(t *testing.T, tz, date, hhmm string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)
	instant, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, loc)
	require.NoError(t, err)
	return instant
}

func TestGetAvailableSlots(t *testing.T) {
	storeID := uuid.New()
	staffID := uuid.New()
	store := &model.Store{Slug: "corte-e-cor", Name: "Corte e Cor", Timezone: "Europe/Lisbon"}
	store.ID = storeID

	svc := testService(
		&fakeStores{store: store},
		&fakeStaff{staff: &model.Staff{StoreID: storeID, Name: "Rita"}},
		&fakeHours{rules: mondayRules(storeID, staffID)},
		&fakeAppointments{},
		&fakeBlocks{},
		localInstant(t, "Europe/Lisbon", "2026-06-15", "08:00"),
	)

	slots, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        staffID,
		Date:           "2026-06-15",
		ServiceMinutes: 30,
		StepMinutes:    15,
		LeadMinutes:    120,
	})
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
}

func TestGetAvailableSlotsClosedDay(t *testing.T) {
	storeID := uuid.New()
	staffID := uuid.New()
	store := &model.Store{Slug: "corte-e-cor", Timezone: "Europe/Lisbon"}
	store.ID = storeID

	svc := testService(
		&fakeStores{store: store},
		&fakeStaff{staff: &model.Staff{StoreID: storeID}},
		&fakeHours{}, // no rules at all: closed
		&fakeAppointments{},
		&fakeBlocks{},
		localInstant(t, "Europe/Lisbon", "2026-06-15", "08:00"),
	)

	slots, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        staffID,
		Date:           "2026-06-15",
		ServiceMinutes: 30,
		StepMinutes:    15,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestGetAvailableSlotsExcludesAppointmentWithBuffer(t *testing.T) {
	storeID := uuid.New()
	staffID := uuid.New()
	store := &model.Store{Slug: "corte-e-cor", Timezone: "Europe/Lisbon"}
	store.ID = storeID

	appt := &model.Appointment{
		StoreID:            storeID,
		StaffID:            staffID,
		StartAt:            localInstant(t, "Europe/Lisbon", "2026-06-15", "10:00"),
		EndAt:              localInstant(t, "Europe/Lisbon", "2026-06-15", "10:30"),
		BufferAfterMinutes: 15,
		Status:             model.AppointmentStatusConfirmed,
	}

	svc := testService(
		&fakeStores{store: store},
		&fakeStaff{staff: &model.Staff{StoreID: storeID}},
		&fakeHours{rules: mondayRules(storeID, staffID)},
		&fakeAppointments{appointments: []*model.Appointment{appt}},
		&fakeBlocks{},
		localInstant(t, "Europe/Lisbon", "2026-06-15", "07:00"),
	)

	slots, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        staffID,
		Date:           "2026-06-15",
		ServiceMinutes: 30,
		StepMinutes:    15,
		LeadMinutes:    0,
	})
	require.NoError(t, err)

	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30") // buffer keeps 10:30-10:45 occupied
	assert.Contains(t, slots, "10:45")
	assert.Contains(t, slots, "09:30") // ends exactly at the appointment start
}

func TestGetAvailableSlotsStoreWideBlock(t *testing.T) {
	storeID := uuid.New()
	staffID := uuid.New()
	store := &model.Store{Slug: "corte-e-cor", Timezone: "Europe/Lisbon"}
	store.ID = storeID

	block := &model.AvailabilityBlock{
		StoreID: storeID,
		StaffID: nil, // store-wide
		StartAt: localInstant(t, "Europe/Lisbon", "2026-06-15", "14:00"),
		EndAt:   localInstant(t, "Europe/Lisbon", "2026-06-15", "18:00"),
	}

	svc := testService(
		&fakeStores{store: store},
		&fakeStaff{staff: &model.Staff{StoreID: storeID}},
		&fakeHours{rules: mondayRules(storeID, staffID)},
		&fakeAppointments{},
		&fakeBlocks{blocks: []*model.AvailabilityBlock{block}},
		localInstant(t, "Europe/Lisbon", "2026-06-15", "07:00"),
	)

	slots, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        staffID,
		Date:           "2026-06-15",
		ServiceMinutes: 30,
		StepMinutes:    15,
	})
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "12:30", slots[len(slots)-1])
}

func TestGetAvailableSlotsValidation(t *testing.T) {
	svc := testService(&fakeStores{}, &fakeStaff{}, &fakeHours{}, &fakeAppointments{}, &fakeBlocks{}, time.Now())

	_, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        uuid.New(),
		Date:           "15-06-2026",
		ServiceMinutes: 30,
		StepMinutes:    15,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	_, err = svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "corte-e-cor",
		StaffID:        uuid.New(),
		Date:           "2026-06-15",
		ServiceMinutes: 0,
		StepMinutes:    15,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestGetAvailableSlotsUnknownStore(t *testing.T) {
	svc := testService(
		&fakeStores{err: apperrors.NotFound("store not found")},
		&fakeStaff{}, &fakeHours{}, &fakeAppointments{}, &fakeBlocks{},
		time.Now(),
	)

	_, err := svc.GetAvailableSlots(context.Background(), &SlotsRequest{
		StoreSlug:      "nope",
		StaffID:        uuid.New(),
		Date:           "2026-06-15",
		ServiceMinutes: 30,
		StepMinutes:    15,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

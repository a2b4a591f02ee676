package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/model"
)

// TxRunner executes a function within a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type StoreRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, store *model.Store) error
	GetBySlug(ctx context.Context, slug string) (*model.Store, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	Update(ctx context.Context, store *model.Store) error
}

type OwnerRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, owner *model.Owner) error
	GetByEmail(ctx context.Context, email string) (*model.Owner, error)
}

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetForStore(ctx context.Context, storeID, staffID uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, storeID, staffID uuid.UUID) error
	// LockTx takes a row lock on the staff record, serializing concurrent
	// booking transactions for the same staff member.
	LockTx(ctx context.Context, tx *sqlx.Tx, staffID uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	GetForStore(ctx context.Context, storeID, serviceID uuid.UUID) (*model.Service, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, storeID, serviceID uuid.UUID) error
}

type WorkingHourRepository interface {
	// ReplaceForStaff swaps a staff member's full weekly rule set in one
	// transaction.
	ReplaceForStaff(ctx context.Context, storeID, staffID uuid.UUID, rules []*model.WorkingHourRule) error
	ListForStaff(ctx context.Context, storeID, staffID uuid.UUID) ([]*model.WorkingHourRule, error)
	ListForWeekday(ctx context.Context, storeID, staffID uuid.UUID, weekday int) ([]*model.WorkingHourRule, error)
}

type BlockRepository interface {
	Create(ctx context.Context, block *model.AvailabilityBlock) error
	List(ctx context.Context, storeID uuid.UUID) ([]*model.AvailabilityBlock, error)
	Delete(ctx context.Context, storeID, blockID uuid.UUID) error
	// ListForWindow returns blocks intersecting [from, to) that are either
	// store-wide or scoped to the given staff member.
	ListForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error)
	ListForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error)
}

type AppointmentRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error
	GetForStore(ctx context.Context, storeID, appointmentID uuid.UUID) (*model.Appointment, error)
	ListForDay(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
	// ListConfirmedForWindow returns the confirmed appointments whose start
	// falls inside [from, to) for one staff member; cancelled rows never
	// count as occupancy.
	ListConfirmedForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
	ListConfirmedForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
	Cancel(ctx context.Context, storeID, appointmentID uuid.UUID, reason string) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

const appointmentColumns = `
	id, store_id, staff_id, service_id, customer_name, customer_phone,
	start_at, end_at, buffer_after_minutes, status, cancelled_at, cancel_reason,
	created_at, updated_at
`

// CreateTx inserts the appointment inside the booking transaction. The
// appointments_no_overlap exclusion constraint is the last line of
// defense: a violation means another booking won the interval, which
// surfaces as a scheduling conflict rather than an internal fault.
func (r *appointmentRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, store_id, staff_id, service_id, customer_name, customer_phone,
			start_at, end_at, buffer_after_minutes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		appointment.ID,
		appointment.StoreID,
		appointment.StaffID,
		appointment.ServiceID,
		appointment.CustomerName,
		appointment.CustomerPhone,
		appointment.StartAt,
		appointment.EndAt,
		appointment.BufferAfterMinutes,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return apperrors.Conflict("time slot no longer available")
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) GetForStore(ctx context.Context, storeID, appointmentID uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1 AND store_id = $2
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, appointmentID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListForDay(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE store_id = $1
		  AND start_at >= $2
		  AND start_at < $3
		ORDER BY start_at ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

const confirmedForWindowQuery = `
	SELECT ` + appointmentColumns + `
	FROM appointments
	WHERE store_id = $1
	  AND staff_id = $2
	  AND status = 'confirmed'
	  AND start_at >= $3
	  AND start_at < $4
	ORDER BY start_at ASC
`

func (r *appointmentRepository) ListConfirmedForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, confirmedForWindowQuery, storeID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListConfirmedForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	err := tx.SelectContext(ctx, &appointments, confirmedForWindowQuery, storeID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed appointments: %w", err)
	}
	return appointments, nil
}

// Cancel is the only mutation appointments support: a one-way status flip
// that keeps the row for history. Rows already cancelled are not found.
func (r *appointmentRepository) Cancel(ctx context.Context, storeID, appointmentID uuid.UUID, reason string) error {
	query := `
		UPDATE appointments
		SET status = 'cancelled', cancelled_at = $1, cancel_reason = $2, updated_at = $1
		WHERE id = $3 AND store_id = $4 AND status = 'confirmed'
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), reason, appointmentID, storeID)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}
	return nil
}

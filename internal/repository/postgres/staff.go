package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (id, store_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.StoreID,
		staff.Name,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) GetForStore(ctx context.Context, storeID, staffID uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, store_id, name, created_at, updated_at
		FROM staff
		WHERE id = $1 AND store_id = $2
	`
	var staff model.Staff
	err := r.db.GetContext(ctx, &staff, query, staffID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff")
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, storeID uuid.UUID) ([]*model.Staff, error) {
	query := `
		SELECT id, store_id, name, created_at, updated_at
		FROM staff
		WHERE store_id = $1
		ORDER BY created_at ASC
	`
	var staff []*model.Staff
	err := r.db.SelectContext(ctx, &staff, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, updated_at = $2
		WHERE id = $3 AND store_id = $4
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, staff.Name, staff.UpdatedAt, staff.ID, staff.StoreID)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff")
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, storeID, staffID uuid.UUID) error {
	query := `
		DELETE FROM staff
		WHERE id = $1 AND store_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, staffID, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff")
	}
	return nil
}

// LockTx serializes booking transactions per staff member: a competing
// booking for the same staff blocks here until the holder commits, so its
// occupancy re-read always sees the winner's row.
func (r *staffRepository) LockTx(ctx context.Context, tx *sqlx.Tx, staffID uuid.UUID) error {
	var id uuid.UUID
	err := tx.GetContext(ctx, &id, `SELECT id FROM staff WHERE id = $1 FOR UPDATE`, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("staff")
		}
		return fmt.Errorf("failed to lock staff row: %w", err)
	}
	return nil
}

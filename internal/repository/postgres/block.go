package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

func (r *blockRepository) Create(ctx context.Context, block *model.AvailabilityBlock) error {
	query := `
		INSERT INTO availability_blocks (id, store_id, staff_id, start_at, end_at, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	block.ID = uuid.New()
	block.CreatedAt = time.Now()
	block.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		block.ID,
		block.StoreID,
		block.StaffID,
		block.StartAt,
		block.EndAt,
		block.Reason,
		block.CreatedAt,
		block.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

func (r *blockRepository) List(ctx context.Context, storeID uuid.UUID) ([]*model.AvailabilityBlock, error) {
	query := `
		SELECT id, store_id, staff_id, start_at, end_at, reason, created_at, updated_at
		FROM availability_blocks
		WHERE store_id = $1
		ORDER BY start_at ASC
	`
	var blocks []*model.AvailabilityBlock
	err := r.db.SelectContext(ctx, &blocks, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

func (r *blockRepository) Delete(ctx context.Context, storeID, blockID uuid.UUID) error {
	query := `
		DELETE FROM availability_blocks
		WHERE id = $1 AND store_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, blockID, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("block")
	}
	return nil
}

// Global blocks (staff_id IS NULL) and blocks scoped to the requested
// staff member both count; the interval test is the half-open overlap.
const blocksForWindowQuery = `
	SELECT id, store_id, staff_id, start_at, end_at, reason, created_at, updated_at
	FROM availability_blocks
	WHERE store_id = $1
	  AND (staff_id IS NULL OR staff_id = $2)
	  AND start_at < $4
	  AND end_at > $3
	ORDER BY start_at ASC
`

func (r *blockRepository) ListForWindow(ctx context.Context, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error) {
	var blocks []*model.AvailabilityBlock
	err := r.db.SelectContext(ctx, &blocks, blocksForWindowQuery, storeID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks for window: %w", err)
	}
	return blocks, nil
}

func (r *blockRepository) ListForWindowTx(ctx context.Context, tx *sqlx.Tx, storeID, staffID uuid.UUID, from, to time.Time) ([]*model.AvailabilityBlock, error) {
	var blocks []*model.AvailabilityBlock
	err := tx.SelectContext(ctx, &blocks, blocksForWindowQuery, storeID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks for window: %w", err)
	}
	return blocks, nil
}

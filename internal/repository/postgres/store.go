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

func (r *storeRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, store *model.Store) error {
	query := `
		INSERT INTO stores (id, slug, name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	store.ID = uuid.New()
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		store.ID,
		store.Slug,
		store.Name,
		store.Timezone,
		store.CreatedAt,
		store.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.Conflict("store slug already taken")
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *storeRepository) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	query := `
		SELECT id, slug, name, timezone, created_at, updated_at
		FROM stores
		WHERE slug = $1
	`
	var store model.Store
	err := r.db.GetContext(ctx, &store, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("store")
		}
		return nil, fmt.Errorf("failed to get store by slug: %w", err)
	}
	return &store, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	query := `
		SELECT id, slug, name, timezone, created_at, updated_at
		FROM stores
		WHERE id = $1
	`
	var store model.Store
	err := r.db.GetContext(ctx, &store, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("store")
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return &store, nil
}

func (r *storeRepository) Update(ctx context.Context, store *model.Store) error {
	query := `
		UPDATE stores
		SET name = $1, updated_at = $2
		WHERE id = $3
	`
	store.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, store.Name, store.UpdatedAt, store.ID)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("store")
	}
	return nil
}

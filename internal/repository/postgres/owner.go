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

func (r *ownerRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, owner *model.Owner) error {
	query := `
		INSERT INTO owners (id, store_id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	owner.ID = uuid.New()
	owner.CreatedAt = time.Now()
	owner.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		owner.ID,
		owner.StoreID,
		owner.Email,
		owner.PasswordHash,
		owner.CreatedAt,
		owner.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.Conflict("email already registered")
		}
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

func (r *ownerRepository) GetByEmail(ctx context.Context, email string) (*model.Owner, error) {
	query := `
		SELECT id, store_id, email, password_hash, created_at, updated_at
		FROM owners
		WHERE email = $1
	`
	var owner model.Owner
	err := r.db.GetContext(ctx, &owner, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("owner")
		}
		return nil, fmt.Errorf("failed to get owner by email: %w", err)
	}
	return &owner, nil
}

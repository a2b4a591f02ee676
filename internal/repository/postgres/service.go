package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
	apperrors "github.com/agendaly/booking-api/pkg/errors"
)

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (id, store_id, name, duration_minutes, price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.StoreID,
		svc.Name,
		svc.DurationMinutes,
		svc.PriceCents,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) GetForStore(ctx context.Context, storeID, serviceID uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, store_id, name, duration_minutes, price_cents, created_at, updated_at
		FROM services
		WHERE id = $1 AND store_id = $2
	`
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, query, serviceID, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context, storeID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, store_id, name, duration_minutes, price_cents, created_at, updated_at
		FROM services
		WHERE store_id = $1
		ORDER BY name ASC
	`
	var services []*model.Service
	err := r.db.SelectContext(ctx, &services, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, duration_minutes = $2, price_cents = $3, updated_at = $4
		WHERE id = $5 AND store_id = $6
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.DurationMinutes,
		svc.PriceCents,
		svc.UpdatedAt,
		svc.ID,
		svc.StoreID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service")
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, storeID, serviceID uuid.UUID) error {
	query := `
		DELETE FROM services
		WHERE id = $1 AND store_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, serviceID, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service")
	}
	return nil
}

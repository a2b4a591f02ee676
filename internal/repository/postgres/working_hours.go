package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/model"
)

// Times are stored as postgres TIME; to_char keeps the Go side on plain
// "HH:MM" strings at minute granularity.
const workingHourColumns = `
	id, store_id, staff_id, weekday, position, is_open,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	created_at, updated_at
`

func (r *workingHourRepository) ReplaceForStaff(ctx context.Context, storeID, staffID uuid.UUID, rules []*model.WorkingHourRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM working_hour_rules WHERE store_id = $1 AND staff_id = $2`,
		storeID, staffID,
	); err != nil {
		return fmt.Errorf("failed to clear working hours: %w", err)
	}

	insert := `
		INSERT INTO working_hour_rules (
			id, store_id, staff_id, weekday, position, is_open,
			start_time, end_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	for _, rule := range rules {
		rule.ID = uuid.New()
		rule.StoreID = storeID
		rule.StaffID = staffID
		rule.CreatedAt = now
		rule.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, insert,
			rule.ID,
			rule.StoreID,
			rule.StaffID,
			rule.Weekday,
			rule.Position,
			rule.IsOpen,
			rule.StartTime,
			rule.EndTime,
			rule.CreatedAt,
			rule.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert working hour rule: %w", err)
		}
	}

	return tx.Commit()
}

func (r *workingHourRepository) ListForStaff(ctx context.Context, storeID, staffID uuid.UUID) ([]*model.WorkingHourRule, error) {
	query := `
		SELECT ` + workingHourColumns + `
		FROM working_hour_rules
		WHERE store_id = $1 AND staff_id = $2
		ORDER BY weekday ASC, position ASC
	`
	var rules []*model.WorkingHourRule
	err := r.db.SelectContext(ctx, &rules, query, storeID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return rules, nil
}

func (r *workingHourRepository) ListForWeekday(ctx context.Context, storeID, staffID uuid.UUID, weekday int) ([]*model.WorkingHourRule, error) {
	query := `
		SELECT ` + workingHourColumns + `
		FROM working_hour_rules
		WHERE store_id = $1 AND staff_id = $2 AND weekday = $3
		ORDER BY position ASC
	`
	var rules []*model.WorkingHourRule
	err := r.db.SelectContext(ctx, &rules, query, storeID, staffID, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours for weekday: %w", err)
	}
	return rules, nil
}

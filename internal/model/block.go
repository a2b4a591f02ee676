package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock is an ad-hoc unavailability interval over absolute
// instants. StaffID nil means the block applies to every staff member of
// the store.
type AvailabilityBlock struct {
	Base
	StoreID uuid.UUID  `db:"store_id" json:"store_id"`
	StaffID *uuid.UUID `db:"staff_id" json:"staff_id,omitempty"`
	StartAt time.Time  `db:"start_at" json:"start_at"`
	EndAt   time.Time  `db:"end_at" json:"end_at"`
	Reason  string     `db:"reason" json:"reason,omitempty"`
}

type CreateBlockRequest struct {
	StaffID *uuid.UUID `json:"staff_id"`
	StartAt time.Time  `json:"start_at" binding:"required"`
	EndAt   time.Time  `json:"end_at" binding:"required"`
	Reason  string     `json:"reason" binding:"max=500"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a confirmed booking. EndAt covers the service duration
// only; BufferAfterMinutes is the booking-time snapshot of the
// post-service buffer and is what occupancy aggregation extends EndAt by.
// Rows are never re-scheduled or deleted; cancellation flips the status.
type Appointment struct {
	Base
	StoreID            uuid.UUID         `db:"store_id" json:"store_id"`
	StaffID            uuid.UUID         `db:"staff_id" json:"staff_id"`
	ServiceID          *uuid.UUID        `db:"service_id" json:"service_id,omitempty"`
	CustomerName       string            `db:"customer_name" json:"customer_name"`
	CustomerPhone      string            `db:"customer_phone" json:"customer_phone"`
	StartAt            time.Time         `db:"start_at" json:"start_at"`
	EndAt              time.Time         `db:"end_at" json:"end_at"`
	BufferAfterMinutes int               `db:"buffer_after_minutes" json:"buffer_after_minutes"`
	Status             AppointmentStatus `db:"status" json:"status"`
	CancelledAt        *time.Time        `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelReason       *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// OccupiedUntil is the instant the staff member becomes free again.
func (a *Appointment) OccupiedUntil() time.Time {
	return a.EndAt.Add(time.Duration(a.BufferAfterMinutes) * time.Minute)
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

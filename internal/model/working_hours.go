package model

import "github.com/google/uuid"

// WorkingHourRule is one shift of a staff member's recurring weekly
// schedule. A (staff, weekday, position) triple is unique; position orders
// the shifts within the day. Times are local civil times of the store's
// zone, "HH:MM", minute granularity.
type WorkingHourRule struct {
	Base
	StoreID   uuid.UUID `db:"store_id" json:"store_id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	Weekday   int       `db:"weekday" json:"weekday"` // 0=Sunday .. 6=Saturday
	Position  int       `db:"position" json:"position"`
	IsOpen    bool      `db:"is_open" json:"is_open"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
}

// WorkingHourRuleInput is one row of a weekly schedule replacement.
type WorkingHourRuleInput struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Position  int    `json:"position" binding:"min=1"`
	IsOpen    bool   `json:"is_open"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type ReplaceWorkingHoursRequest struct {
	Rules []WorkingHourRuleInput `json:"rules" binding:"required,dive"`
}

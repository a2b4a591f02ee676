package model

import "github.com/google/uuid"

// Staff is a bookable member of a store. Deleting the store cascades.
type Staff struct {
	Base
	StoreID uuid.UUID `db:"store_id" json:"store_id"`
	Name    string    `db:"name" json:"name"`
}

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

type UpdateStaffRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

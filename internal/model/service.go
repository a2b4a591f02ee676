package model

import "github.com/google/uuid"

// MaxServiceMinutes is the hard ceiling on a service duration (8 hours).
const MaxServiceMinutes = 8 * 60

type Service struct {
	Base
	StoreID         uuid.UUID `db:"store_id" json:"store_id"`
	Name            string    `db:"name" json:"name"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int       `db:"price_cents" json:"price_cents"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=120"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0,lte=480"`
	PriceCents      int    `json:"price_cents" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=120"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gt=0,lte=480"`
	PriceCents      *int    `json:"price_cents" binding:"omitempty,gte=0"`
}

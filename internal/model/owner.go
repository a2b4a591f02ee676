package model

import "github.com/google/uuid"

// Owner is the store operator account used for the dashboard.
type Owner struct {
	Base
	StoreID      uuid.UUID `db:"store_id" json:"store_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	StoreName string `json:"store_name" binding:"required,min=1,max=120"`
	Slug      string `json:"slug" binding:"required,min=2,max=60"`
	Timezone  string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Store *Store `json:"store"`
}

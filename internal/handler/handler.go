package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaly/booking-api/internal/middleware"
	"github.com/agendaly/booking-api/pkg/errors"
)

// StoreID returns the store scope set by the auth middleware.
func StoreID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.ContextStoreID)
	if !ok {
		return uuid.Nil, errors.Unauthorized("missing store scope")
	}
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.Unauthorized("invalid store scope")
	}
	return id, nil
}

// OwnerID returns the authenticated owner set by the auth middleware.
func OwnerID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.ContextOwnerID)
	if !ok {
		return uuid.Nil, errors.Unauthorized("missing owner scope")
	}
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.Unauthorized("invalid owner scope")
	}
	return id, nil
}

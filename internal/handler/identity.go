package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
)

// identity returns the authenticated caller set by the auth middleware.
// Handlers behind RequireAuth may assume ok is true.
func identity(c *gin.Context) (uuid.UUID, models.Role, bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, "", false
	}
	rawRole, exists := c.Get("user_role")
	if !exists {
		return uuid.Nil, "", false
	}

	id, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := rawRole.(models.Role)
	if !ok {
		return uuid.Nil, "", false
	}

	return id, role, true
}

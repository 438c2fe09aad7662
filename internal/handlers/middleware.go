package handler

import (
	"net/http"

	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const currentUserKey = "currentUser"

// Identity resolves the caller from the X-User-ID header set by the external
// auth layer. Session mechanics live outside this service.
func Identity(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}

		user, err := userRepo.GetByID(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(currentUserKey).(*models.User)
	return user
}

// AdminOnly gates administrative endpoints.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

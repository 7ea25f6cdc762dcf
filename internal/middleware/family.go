package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
)

// UserLoader resolves a user from their ID.
type UserLoader interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// FamilyMiddleware resolves the caller's family membership and stores
// family_id in the context. Requests from users without a family are
// rejected; every dish, meal and suggestion route is family-scoped.
func FamilyMiddleware(loader UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := loader.GetUserByID(c.Request.Context(), userID.(uuid.UUID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}
		if user.FamilyID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "user does not belong to a family"})
			c.Abort()
			return
		}

		c.Set("family_id", *user.FamilyID)
		c.Next()
	}
}

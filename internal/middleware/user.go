package middleware

import (
	"context"
	"errors"
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserKey is the gin context key holding the loaded *domain.User
const UserKey = "user"

// UserLoader finds users by id
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*domain.User, error)
}

// CurrentUserMiddleware loads the token's user from the database on each
// request and rejects tokens whose user no longer exists
func CurrentUserMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c) // Get userID from context
		// Check if userID exists in context
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.UserByID(c.Request.Context(), userID) // Fetch user from database
		if errors.Is(err, domain.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			Logger(c).WithField("error", err.Error()).Error("Failed to load current user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		c.Set(UserKey, user) // Store user in context
		c.Next()
	}
}

// CurrentUser returns the user stored by CurrentUserMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status. resource names the
// record in not-found messages.
func respondError(c *gin.Context, resource string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrAmountNotDetected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not detect amount in voice"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		middleware.Logger(c).WithField("error", err.Error()).Error(resource + " request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// requireUser returns the caller's id or writes 401
func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// idParam parses the :id path parameter or writes 400
func idParam(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + resource + " id"})
		return 0, false
	}
	return uint(id), true
}

// dateQuery parses an optional YYYY-MM-DD query parameter
func dateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return nil, &domain.ValidationError{Field: key, Reason: "must be YYYY-MM-DD"}
	}
	return &d, nil
}

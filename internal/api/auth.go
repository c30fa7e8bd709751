package api

import (
	"errors"
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Context helpers
	"finance_tracker/internal/store"      // Persistence
	"finance_tracker/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Email must be provided
	Password string `json:"password" binding:"required,min=6"` // Password must be provided
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	Token string      `json:"token"` // JWT token
	User  UserSummary `json:"user"`  // Logged in user
}

// UserSummary is the minimal user view returned by auth endpoints
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterHandler creates a user account
func RegisterHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, valid email and password (min 6 chars) required"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Name: strings.TrimSpace(req.Name), Email: req.Email, PasswordHash: string(hash)}
		// Attempt to create the user in the database
		if err := st.CreateUser(c.Request.Context(), &user); err != nil {
			respondError(c, "User", err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registered",
			"user":    UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(st *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
			return
		}
		user, err := st.UserByEmail(c.Request.Context(), req.Email) // Fetch user from database
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, "User", domain.ErrInvalidCredentials)
			return
		} else if err != nil {
			respondError(c, "User", err)
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(c, "User", domain.ErrInvalidCredentials)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			User:  UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

// MeHandler returns the authenticated user's profile with badges and streak
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Loaded by CurrentUserMiddleware
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, user.Profile())
	}
}

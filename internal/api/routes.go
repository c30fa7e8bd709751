package api

import (
	"net/http"
	"time"

	"finance_tracker/internal/ledger"
	"finance_tracker/internal/middleware"
	"finance_tracker/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the HTTP handlers need
type Deps struct {
	Store     *store.Store
	Ledger    *ledger.Service
	JWTSecret string
	JWTTTL    time.Duration
	Now       func() time.Time
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	r.GET("/health", HealthHandler(d.Store))

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(d.Store))
	auth.POST("/login", LoginHandler(d.Store, d.JWTSecret, d.JWTTTL))

	// Everything else needs a valid token whose user still exists
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.CurrentUserMiddleware(d.Store))

	protected.GET("/me", MeHandler())

	protected.GET("/transactions", ListTransactionsHandler(d.Ledger))
	protected.POST("/transactions", CreateTransactionHandler(d.Ledger))
	protected.PUT("/transactions/:id", UpdateTransactionHandler(d.Ledger))
	protected.PATCH("/transactions/:id", UpdateTransactionHandler(d.Ledger))
	protected.DELETE("/transactions/:id", DeleteTransactionHandler(d.Ledger))

	protected.POST("/voice-transaction", VoiceTransactionHandler(d.Ledger))
	protected.POST("/voice-transaction/preview", VoicePreviewHandler(d.Ledger))

	protected.GET("/dashboard", DashboardHandler(d.Ledger))
	protected.GET("/reports", ReportHandler(d.Ledger))

	protected.POST("/reminders", CreateReminderHandler(d.Store))
	protected.GET("/reminders", ListRemindersHandler(d.Store, d.Now))
	protected.PUT("/reminders/:id", UpdateReminderHandler(d.Store))
	protected.PATCH("/reminders/:id", UpdateReminderHandler(d.Store))
	protected.DELETE("/reminders/:id", DeleteReminderHandler(d.Store))
}

// HealthHandler pings the database
func HealthHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			middleware.Logger(c).WithField("error", err.Error()).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "finance-tracker"})
	}
}

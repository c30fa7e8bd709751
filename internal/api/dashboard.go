package api

import (
	"net/http"

	"finance_tracker/internal/analytics"
	"finance_tracker/internal/ledger"

	"github.com/gin-gonic/gin"
)

// DashboardResponse is the dashboard summary plus whether it came from cache
type DashboardResponse struct {
	analytics.Summary
	Cached bool `json:"cached"`
}

// DashboardHandler returns totals, category distribution and daily/monthly series
func DashboardHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		summary, cached, err := svc.Dashboard(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "Dashboard", err)
			return
		}
		c.JSON(http.StatusOK, DashboardResponse{Summary: summary, Cached: cached})
	}
}

// ReportHandler summarizes an optional from/to date range
func ReportHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		from, err := dateQuery(c, "from")
		if err != nil {
			respondError(c, "Report", err)
			return
		}
		to, err := dateQuery(c, "to")
		if err != nil {
			respondError(c, "Report", err)
			return
		}
		summary, err := svc.Report(c.Request.Context(), userID, from, to)
		if err != nil {
			respondError(c, "Report", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"totals":     summary.Totals,
			"monthly":    summary.Monthly,
			"categories": summary.Categories,
		})
	}
}

package api

import (
	"net/http" // HTTP status codes
	"time"     // Due dates and windows

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Context helpers
	"finance_tracker/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ReminderRequest is the create payload
type ReminderRequest struct {
	Title   string     `json:"title"`    // What is due
	DueDate *time.Time `json:"due_date"` // RFC3339 timestamp
}

// CreateReminderHandler stores a reminder for the caller
func CreateReminderHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req ReminderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and due_date required"})
			return
		}
		r := domain.Reminder{UserID: userID, Title: req.Title}
		if req.DueDate != nil {
			r.DueDate = *req.DueDate
		}
		if err := st.CreateReminder(c.Request.Context(), &r); err != nil {
			respondError(c, "Reminder", err)
			return
		}
		middleware.Logger(c).WithFields(logrus.Fields{
			"reminder_id": r.ID,                           // Stored ID
			"due_date":    r.DueDate.Format(time.RFC3339), // Due timestamp
		}).Info("Reminder created")
		c.JSON(http.StatusCreated, r)
	}
}

// ListRemindersHandler returns the caller's reminders, soonest first. With
// due_within (a duration such as 60s) only incomplete reminders due inside
// that window from now are returned.
func ListRemindersHandler(st *store.Store, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var filter store.ReminderFilter
		if w := c.Query("due_within"); w != "" {
			window, err := time.ParseDuration(w)
			if err != nil || window <= 0 {
				respondError(c, "Reminder", &domain.ValidationError{Field: "due_within", Reason: "must be a positive duration"})
				return
			}
			from := now()
			until := from.Add(window)
			filter = store.ReminderFilter{DueAfter: &from, DueBefore: &until, IncompleteOnly: true}
		}
		reminders, err := st.ListReminders(c.Request.Context(), userID, filter)
		if err != nil {
			respondError(c, "Reminder", err)
			return
		}
		c.JSON(http.StatusOK, reminders)
	}
}

// UpdateReminderHandler applies a partial update to one of the caller's reminders
func UpdateReminderHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "reminder")
		if !ok {
			return
		}
		var patch domain.ReminderPatch // Bind JSON request to struct
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Update failed"})
			return
		}
		r, err := st.UpdateReminder(c.Request.Context(), userID, id, patch)
		if err != nil {
			respondError(c, "Reminder", err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// DeleteReminderHandler removes one of the caller's reminders
func DeleteReminderHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "reminder")
		if !ok {
			return
		}
		if err := st.DeleteReminder(c.Request.Context(), userID, id); err != nil {
			respondError(c, "Reminder", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
	}
}

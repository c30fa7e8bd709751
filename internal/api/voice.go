package api

import (
	"net/http"

	"finance_tracker/internal/ledger"

	"github.com/gin-gonic/gin"
)

// VoiceRequest carries a speech transcript
type VoiceRequest struct {
	Text string `json:"text"`
}

// VoiceTransactionHandler parses a transcript and stores the resulting transaction
func VoiceTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req VoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
			return
		}
		res, err := svc.CreateFromVoice(c.Request.Context(), userID, req.Text)
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		logTransaction(c, "Transaction added via voice", res)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Transaction added via voice",
			"transaction": res.Transaction,
			"badges":      res.Badges,
			"new_badges":  res.NewBadges,
			"streak":      res.Streak,
		})
	}
}

// VoicePreviewHandler parses a transcript without storing anything
func VoicePreviewHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
			return
		}
		draft, err := svc.ParseVoice(req.Text)
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		c.JSON(http.StatusOK, draft)
	}
}

package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/ledger"     // Transaction workflow
	"finance_tracker/internal/middleware" // Context helpers
	"finance_tracker/internal/store"      // Listing filters

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListTransactionsHandler returns the caller's transactions, newest first,
// optionally filtered by type, category, date range, trip or report
func ListTransactionsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		filter := store.TransactionFilter{
			Type:     domain.TransactionType(c.Query("type")), // income or expense
			Category: c.Query("category"),                     // Exact category
			Trip:     c.Query("trip"),                         // Trip destination
			Report:   c.Query("report"),                       // Report title
		}
		if filter.Type != "" && !filter.Type.Valid() {
			respondError(c, "Transaction", &domain.ValidationError{Field: "type", Reason: "must be income or expense"})
			return
		}
		var err error
		if filter.From, err = dateQuery(c, "from"); err != nil {
			respondError(c, "Transaction", err)
			return
		}
		if filter.To, err = dateQuery(c, "to"); err != nil {
			respondError(c, "Transaction", err)
			return
		}
		txs, err := svc.List(c.Request.Context(), userID, filter)
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		c.JSON(http.StatusOK, txs)
	}
}

// CreateTransactionHandler stores a manual, trip or report transaction and
// returns it with the caller's updated badges and streak
func CreateTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var draft domain.TransactionDraft // Bind JSON request to struct
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		res, err := svc.Create(c.Request.Context(), userID, draft)
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		logTransaction(c, "Transaction created", res)
		c.JSON(http.StatusCreated, res)
	}
}

// UpdateTransactionHandler applies a partial update to one of the caller's transactions
func UpdateTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "transaction")
		if !ok {
			return
		}
		var patch domain.TransactionPatch // Bind JSON request to struct
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Update failed"})
			return
		}
		t, err := svc.Update(c.Request.Context(), userID, id, patch)
		if err != nil {
			respondError(c, "Transaction", err)
			return
		}
		middleware.Logger(c).WithField("transaction_id", t.ID).Info("Transaction updated")
		c.JSON(http.StatusOK, t)
	}
}

// DeleteTransactionHandler removes one of the caller's transactions
func DeleteTransactionHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c, "transaction")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID, id); err != nil {
			respondError(c, "Transaction", err)
			return
		}
		middleware.Logger(c).WithField("transaction_id", id).Info("Transaction deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}

func logTransaction(c *gin.Context, msg string, res *ledger.CreateResult) {
	middleware.Logger(c).WithFields(logrus.Fields{
		"transaction_id": res.Transaction.ID,              // Stored ID
		"type":           res.Transaction.Type,            // income or expense
		"category":       res.Transaction.Category,        // Category
		"amount":         res.Transaction.Amount.String(), // Amount
		"source":         res.Transaction.Source,          // manual or voice
		"streak":         res.Streak,                      // Streak after this transaction
		"new_badges":     res.NewBadges,                   // Badges unlocked now
	}).Info(msg)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/utils/validators"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto an HTTP status. Business errors
// carry their message; anything else is logged and hidden behind fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindValidation:
		logger.Warn("Business rule rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case apperrors.KindDuplicate, apperrors.KindConflict:
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// operatorFromContext returns the authenticated operator or writes a 401.
func operatorFromContext(c *gin.Context, logger *slog.Logger) (string, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return operatorID, true
}

// accountNumberParam reads :number and rejects anything that is not NNNNN-D.
func accountNumberParam(c *gin.Context, logger *slog.Logger) (string, bool) {
	number := c.Param("number")
	if !validators.IsValidAccountNumber(number) {
		logger.Warn("Invalid account number in path", slog.String("account_number", number))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account number format, expected NNNNN-D"})
		return "", false
	}
	return number, true
}

func bindFailed(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

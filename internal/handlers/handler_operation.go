package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// operationHandler handles the balance-affecting endpoints.
type operationHandler struct {
	ledgerService portssvc.MoneyMovementSvc
}

type transferFunc func(ctx context.Context, from, to string, amount decimal.Decimal, description, operatorID string) (*domain.OperationReceipt, error)

type amountFunc func(ctx context.Context, number string, amount decimal.Decimal, description, operatorID string) (*domain.OperationReceipt, error)

func (h *operationHandler) handleAmount(c *gin.Context, op string, apply amountFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for "+op)
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	receipt, err := apply(c.Request.Context(), number, req.Amount.Decimal, req.Description, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to process "+op)
		return
	}

	logger.Info("Operation completed", slog.String("operation", op), slog.String("account_number", number))
	c.JSON(http.StatusOK, dto.ToOperationReceiptResponse(receipt))
}

func (h *operationHandler) handleTransfer(c *gin.Context, op string, send transferFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for "+op)
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	receipt, err := send(c.Request.Context(), number, req.DestinationAccountNumber, req.Amount.Decimal, req.Description, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to process "+op)
		return
	}

	logger.Info("Operation completed",
		slog.String("operation", op),
		slog.String("from", number),
		slog.String("to", req.DestinationAccountNumber),
	)
	c.JSON(http.StatusOK, dto.ToOperationReceiptResponse(receipt))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits the amount. Accepted on blocked accounts; capped by the deposit ceiling.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Param   deposit body dto.AmountRequest true "Amount and description"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Invalid amount or above the ceiling"
// @Failure 500 {object} map[string]string "Failed to process deposit"
// @Security BearerAuth
// @Router /accounts/{number}/deposit [post]
func (h *operationHandler) deposit(c *gin.Context) {
	h.handleAmount(c, "deposit", h.ledgerService.Deposit)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Debits the amount plus the withdrawal fee (4.50 checking, 0 savings)
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Param   withdrawal body dto.AmountRequest true "Amount and description"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Blocked, insufficient funds or over the daily limit"
// @Failure 500 {object} map[string]string "Failed to process withdrawal"
// @Security BearerAuth
// @Router /accounts/{number}/withdraw [post]
func (h *operationHandler) withdraw(c *gin.Context) {
	h.handleAmount(c, "withdrawal", h.ledgerService.Withdraw)
}

// transfer godoc
// @Summary Transfer between accounts
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Origin account number (NNNNN-D)"
// @Param   transfer body dto.TransferRequest true "Destination and amount"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Same account, blocked or insufficient funds"
// @Failure 500 {object} map[string]string "Failed to process transfer"
// @Security BearerAuth
// @Router /accounts/{number}/transfer [post]
func (h *operationHandler) transfer(c *gin.Context) {
	h.handleTransfer(c, "transfer", h.ledgerService.Transfer)
}

// pix godoc
// @Summary Send a PIX transfer
// @Description Free for both account kinds
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Origin account number (NNNNN-D)"
// @Param   transfer body dto.TransferRequest true "Destination and amount"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Rejected by a business rule"
// @Failure 500 {object} map[string]string "Failed to process pix"
// @Security BearerAuth
// @Router /accounts/{number}/pix [post]
func (h *operationHandler) pix(c *gin.Context) {
	h.handleTransfer(c, "pix", h.ledgerService.Pix)
}

// wire godoc
// @Summary Send a wire transfer
// @Description Charges the origin kind's wire fee: 15.90 from checking, 10.90 from savings
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Origin account number (NNNNN-D)"
// @Param   transfer body dto.TransferRequest true "Destination and amount"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Rejected by a business rule"
// @Failure 500 {object} map[string]string "Failed to process wire"
// @Security BearerAuth
// @Router /accounts/{number}/wire [post]
func (h *operationHandler) wire(c *gin.Context) {
	h.handleTransfer(c, "wire", h.ledgerService.Wire)
}

// paperTransfer godoc
// @Summary Send a paper transfer
// @Description Charges the origin kind's paper fee: 12.90 from checking, 8.90 from savings
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Origin account number (NNNNN-D)"
// @Param   transfer body dto.TransferRequest true "Destination and amount"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Rejected by a business rule"
// @Failure 500 {object} map[string]string "Failed to process paper transfer"
// @Security BearerAuth
// @Router /accounts/{number}/paper-transfer [post]
func (h *operationHandler) paperTransfer(c *gin.Context) {
	h.handleTransfer(c, "paper transfer", h.ledgerService.PaperTransfer)
}

// transferToChecking godoc
// @Summary Sweep savings into checking
// @Description Moves the amount from a savings account to the same client's checking account, free of charge
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   number path string true "Savings account number (NNNNN-D)"
// @Param   transfer body dto.AmountRequest true "Amount and description"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account or checking account not found"
// @Failure 422 {object} map[string]string "Rejected by a business rule"
// @Failure 500 {object} map[string]string "Failed to process transfer to checking"
// @Security BearerAuth
// @Router /accounts/{number}/transfer-to-checking [post]
func (h *operationHandler) transferToChecking(c *gin.Context) {
	h.handleAmount(c, "transfer to checking", h.ledgerService.TransferToChecking)
}

// applyInterest godoc
// @Summary Apply monthly interest
// @Description Credits one month of interest at 0.5% to a savings account. No movement is recorded when it rounds to zero.
// @Tags operations
// @Produce  json
// @Param   number path string true "Savings account number (NNNNN-D)"
// @Success 200 {object} dto.OperationReceiptResponse
// @Failure 400 {object} map[string]string "Invalid account number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Not a savings account"
// @Failure 500 {object} map[string]string "Failed to apply interest"
// @Security BearerAuth
// @Router /accounts/{number}/interest [post]
func (h *operationHandler) applyInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	receipt, err := h.ledgerService.ApplyInterest(c.Request.Context(), number, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply interest")
		return
	}
	c.JSON(http.StatusOK, dto.ToOperationReceiptResponse(receipt))
}

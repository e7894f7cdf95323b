package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// accountHandler handles account lifecycle and read requests.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// RegisterAccountRoutes registers account routes, including the money movement endpoints.
func RegisterAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &accountHandler{ledgerService: ledgerService}
	ops := &operationHandler{ledgerService: ledgerService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/checking", h.openChecking)
		accounts.POST("/savings", h.openSavings)

		accounts.GET("/:number", h.getAccount)
		accounts.GET("/:number/balance", h.getBalance)
		accounts.GET("/:number/movements", h.listMovements)
		accounts.GET("/:number/interest-projection", h.projectInterest)
		accounts.PUT("/:number/overdraft-limit", h.changeOverdraftLimit)
		accounts.POST("/:number/block", h.blockAccount)
		accounts.POST("/:number/unblock", h.unblockAccount)
		accounts.POST("/:number/validate", h.validateOperation)

		accounts.POST("/:number/deposit", ops.deposit)
		accounts.POST("/:number/withdraw", ops.withdraw)
		accounts.POST("/:number/transfer", ops.transfer)
		accounts.POST("/:number/pix", ops.pix)
		accounts.POST("/:number/wire", ops.wire)
		accounts.POST("/:number/paper-transfer", ops.paperTransfer)
		accounts.POST("/:number/transfer-to-checking", ops.transferToChecking)
		accounts.POST("/:number/interest", ops.applyInterest)
	}
}

// openChecking godoc
// @Summary Open a checking account
// @Description Opens the client's checking account. The overdraft limit defaults to 500 and must be within [0, 10000].
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenCheckingRequest true "Owner and overdraft limit"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 409 {object} map[string]string "No free account number"
// @Failure 422 {object} map[string]string "Client inactive, duplicate kind or limit out of range"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Security BearerAuth
// @Router /accounts/checking [post]
func (h *accountHandler) openChecking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenCheckingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for OpenChecking")
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	var limit *decimal.Decimal
	if req.OverdraftLimit != nil {
		limit = &req.OverdraftLimit.Decimal
	}

	acc, err := h.ledgerService.OpenChecking(c.Request.Context(), req.ClientID, limit, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Checking account opened", slog.String("account_number", acc.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

// openSavings godoc
// @Summary Open a savings account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.OpenSavingsRequest true "Owner"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 409 {object} map[string]string "No free account number"
// @Failure 422 {object} map[string]string "Client inactive or duplicate kind"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Security BearerAuth
// @Router /accounts/savings [post]
func (h *accountHandler) openSavings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for OpenSavings")
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.OpenSavings(c.Request.Context(), req.ClientID, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to open account")
		return
	}

	logger.Info("Savings account opened", slog.String("account_number", acc.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid account number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{number} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.GetAccountByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// getBalance godoc
// @Summary Get balance details
// @Description Balance and available funds, plus overdraft figures for checking or next month's interest for savings
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Success 200 {object} domain.BalanceDetails
// @Failure 400 {object} map[string]string "Invalid account number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{number}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	details, err := h.ledgerService.GetBalanceDetails(c.Request.Context(), number)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, details)
}

// listMovements godoc
// @Summary Account statement
// @Description Movements where the account is origin or destination, newest first
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Invalid next token"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Security BearerAuth
// @Router /accounts/{number}/movements [get]
func (h *accountHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, err, "query params for ListMovements")
		return
	}

	res, err := h.ledgerService.ListMovements(c.Request.Context(), number, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, res)
}

// projectInterest godoc
// @Summary Project savings interest
// @Tags accounts
// @Produce  json
// @Param   number path string true "Savings account number (NNNNN-D)"
// @Param   months query int false "Months to project" default(12)
// @Success 200 {object} dto.InterestProjectionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Not a savings account"
// @Failure 500 {object} map[string]string "Failed to project interest"
// @Security BearerAuth
// @Router /accounts/{number}/interest-projection [get]
func (h *accountHandler) projectInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var params dto.InterestProjectionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, logger, err, "query params for ProjectInterest")
		return
	}

	months, err := h.ledgerService.ProjectInterest(c.Request.Context(), number, params.Months)
	if err != nil {
		respondError(c, logger, err, "Failed to project interest")
		return
	}
	c.JSON(http.StatusOK, dto.InterestProjectionResponse{AccountNumber: number, Months: months})
}

// changeOverdraftLimit godoc
// @Summary Change the overdraft limit
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   number path string true "Checking account number (NNNNN-D)"
// @Param   limit body dto.ChangeOverdraftLimitRequest true "New limit"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Not checking, blocked, out of range or below usage"
// @Failure 500 {object} map[string]string "Failed to change overdraft limit"
// @Security BearerAuth
// @Router /accounts/{number}/overdraft-limit [put]
func (h *accountHandler) changeOverdraftLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var req dto.ChangeOverdraftLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for ChangeOverdraftLimit")
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.ChangeOverdraftLimit(c.Request.Context(), number, req.OverdraftLimit.Decimal, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to change overdraft limit")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// blockAccount godoc
// @Summary Block an account
// @Description Blocks debits. Deposits are still accepted.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Param   reason body dto.BlockAccountRequest false "Reason for the block"
// @Success 200 {object} dto.BlockAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Already blocked"
// @Failure 500 {object} map[string]string "Failed to block account"
// @Security BearerAuth
// @Router /accounts/{number}/block [post]
func (h *accountHandler) blockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	// The body is optional.
	var req dto.BlockAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		bindFailed(c, logger, err, "JSON for BlockAccount")
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.BlockAccount(c.Request.Context(), number, req.Reason, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to block account")
		return
	}
	c.JSON(http.StatusOK, dto.BlockAccountResponse{Account: dto.ToAccountResponse(acc), Reason: req.Reason})
}

// unblockAccount godoc
// @Summary Unblock an account
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid account number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Not blocked or client inactive"
// @Failure 500 {object} map[string]string "Failed to unblock account"
// @Security BearerAuth
// @Router /accounts/{number}/unblock [post]
func (h *accountHandler) unblockAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	operatorID, ok := operatorFromContext(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.UnblockAccount(c.Request.Context(), number, operatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to unblock account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// validateOperation godoc
// @Summary Pre-flight an operation
// @Description Runs the checks of an operation without applying it and reports the fee
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number (NNNNN-D)"
// @Param   operation body dto.ValidateOperationRequest true "Kind and amount"
// @Success 200 {object} dto.ValidateOperationResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "The operation would be rejected"
// @Failure 500 {object} map[string]string "Failed to validate operation"
// @Security BearerAuth
// @Router /accounts/{number}/validate [post]
func (h *accountHandler) validateOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number, ok := accountNumberParam(c, logger)
	if !ok {
		return
	}

	var req dto.ValidateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, logger, err, "JSON for ValidateOperation")
		return
	}

	kind, err := domain.ParseOperationKind(req.Kind)
	if err != nil {
		respondError(c, logger, err, "Failed to validate operation")
		return
	}

	fee, err := h.ledgerService.ValidateOperation(c.Request.Context(), number, kind, req.Amount.Decimal)
	if err != nil {
		respondError(c, logger, err, "Failed to validate operation")
		return
	}
	c.JSON(http.StatusOK, dto.ValidateOperationResponse{Valid: true, Fee: fee})
}

package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// GetAccountByNumber retrieves an account by its number.
func (s *ledgerService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountByNumber(ctx, s.store, accountNumber)
}

// GetBalanceDetails returns the kind-specific balance summary.
func (s *ledgerService) GetBalanceDetails(ctx context.Context, accountNumber string) (*domain.BalanceDetails, error) {
	acc, err := s.accountByNumber(ctx, s.store, accountNumber)
	if err != nil {
		return nil, err
	}
	details := acc.Details()
	return &details, nil
}

// ListClientAccounts returns the client with every account they hold.
func (s *ledgerService) ListClientAccounts(ctx context.Context, clientID string) (*domain.ClientPortfolio, error) {
	client, err := s.clientByID(ctx, s.store, clientID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.Accounts().ListAccountsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client accounts", "client_id", clientID)
		return nil, internalOr(err)
	}
	portfolio := domain.NewClientPortfolio(*client, accounts)
	return &portfolio, nil
}

// ListMovements returns one page of the account statement, newest first.
func (s *ledgerService) ListMovements(ctx context.Context, accountNumber string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	acc, err := s.accountByNumber(ctx, s.store, accountNumber)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = s.pageSize
	}

	var after *portsrepo.MovementCursor
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next token: %w", apperrors.ErrValidation, err)
		}
		after = &portsrepo.MovementCursor{CreatedAt: createdAt, MovementID: id}
	}

	// One extra row tells whether another page exists.
	movements, err := s.store.Movements().ListMovementsByAccount(ctx, acc.AccountID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", "account_number", accountNumber)
		return nil, internalOr(err)
	}

	res := &dto.ListMovementsResponse{Movements: make([]dto.MovementResponse, 0, min(len(movements), limit))}
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		res.NextToken = &token
	}
	for _, mv := range movements {
		res.Movements = append(res.Movements, dto.ToMovementResponse(mv))
	}
	return res, nil
}

// ProjectInterest projects months of compounding on a savings balance.
func (s *ledgerService) ProjectInterest(ctx context.Context, accountNumber string, months int) ([]domain.InterestProjection, error) {
	if months < 1 {
		return nil, fmt.Errorf("%w: months must be at least 1", apperrors.ErrValidation)
	}
	acc, err := s.accountByNumber(ctx, s.store, accountNumber)
	if err != nil {
		return nil, err
	}
	sv, err := acc.Savings()
	if err != nil {
		return nil, err
	}
	return slices.Collect(sv.ProjectInterest(months)), nil
}

// ValidateOperation runs the checks of an operation against the current
// state without applying it and returns the fee it would cost.
//
// Checks run in this order: account exists, not blocked, client active, then
// the kind-specific amount, funds and limit checks.
func (s *ledgerService) ValidateOperation(ctx context.Context, accountNumber string, kind domain.OperationKind, amount decimal.Decimal) (fee decimal.Decimal, err error) {
	ctx, finish := s.startOperation(ctx, "validate_operation",
		attribute.String("account.number", accountNumber),
		attribute.String("operation.kind", string(kind)),
	)
	defer func() { finish(err) }()

	acc, err := s.accountByNumber(ctx, s.store, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	if acc.Blocked {
		return decimal.Zero, domain.ErrAccountBlocked
	}
	client, err := s.clientByID(ctx, s.store, acc.ClientID)
	if err != nil {
		return decimal.Zero, err
	}
	if !client.IsActive {
		return decimal.Zero, domain.ErrClientInactive
	}

	switch kind {
	case domain.OpDeposit:
		if !domain.ValidAmount(amount) {
			return decimal.Zero, domain.ErrInvalidAmount
		}
		if amount.GreaterThan(s.depositCeiling) {
			return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrAmountTooLarge, s.depositCeiling.StringFixed(2))
		}
		return decimal.Zero, nil

	case domain.OpWithdrawal, domain.OpTransfer, domain.OpPix, domain.OpWire, domain.OpPaperTransfer:
		if !domain.ValidAmount(amount) {
			return decimal.Zero, domain.ErrInvalidAmount
		}
		fee = acc.Fee(kind)
		if available := acc.AvailableBalance(); available.LessThan(amount.Add(fee)) {
			return decimal.Zero, fmt.Errorf("%w: available %s, required %s", domain.ErrInsufficientFunds, available.StringFixed(2), amount.Add(fee).StringFixed(2))
		}
		if acc.ExceedsDailyLimit(amount) {
			return decimal.Zero, domain.ErrDailyLimitExceeded
		}
		return fee, nil
	}

	return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, kind)
}

package services

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read-only account queries.
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves an account by its customer-facing number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetBalanceDetails returns balance, available funds and kind-specific figures.
	GetBalanceDetails(ctx context.Context, accountNumber string) (*domain.BalanceDetails, error)

	// ListClientAccounts returns the client, their accounts and the total balance.
	ListClientAccounts(ctx context.Context, clientID string) (*domain.ClientPortfolio, error)

	// ListMovements returns the account statement, newest first.
	ListMovements(ctx context.Context, accountNumber string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)

	// ProjectInterest projects savings interest for the given number of months.
	ProjectInterest(ctx context.Context, accountNumber string, months int) ([]domain.InterestProjection, error)

	// ValidateOperation runs the checks of a mutation without applying it and
	// returns the fee that would be charged.
	ValidateOperation(ctx context.Context, accountNumber string, kind domain.OperationKind, amount decimal.Decimal) (decimal.Decimal, error)
}

// AccountLifecycleSvc defines account opening and administrative changes.
type AccountLifecycleSvc interface {
	OpenChecking(ctx context.Context, clientID string, overdraftLimit *decimal.Decimal, operatorID string) (*domain.Account, error)
	OpenSavings(ctx context.Context, clientID string, operatorID string) (*domain.Account, error)
	ChangeOverdraftLimit(ctx context.Context, accountNumber string, limit decimal.Decimal, operatorID string) (*domain.Account, error)
	BlockAccount(ctx context.Context, accountNumber string, reason string, operatorID string) (*domain.Account, error)
	UnblockAccount(ctx context.Context, accountNumber string, operatorID string) (*domain.Account, error)
}

// MoneyMovementSvc defines the balance-affecting operations. Each one records a movement.
type MoneyMovementSvc interface {
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	Transfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	Pix(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	Wire(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	PaperTransfer(ctx context.Context, from string, to string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	TransferToChecking(ctx context.Context, savingsNumber string, amount decimal.Decimal, description string, operatorID string) (*domain.OperationReceipt, error)
	ApplyInterest(ctx context.Context, savingsNumber string, operatorID string) (*domain.OperationReceipt, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	AccountReaderSvc
	AccountLifecycleSvc
	MoneyMovementSvc
}

package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its customer-facing number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountByClientAndKind retrieves the client's account of the given kind.
	FindAccountByClientAndKind(ctx context.Context, clientID string, kind domain.AccountKind) (*domain.Account, error)

	// ListAccountsByClient retrieves all accounts of a client, oldest first.
	ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error)

	// AccountNumberExists reports whether an account number is already taken.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates balance, limits, block flag and audit fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Its movements are kept.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountTransactionSupport defines operations that support multi-account updates
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them until the
	// surrounding transaction ends. Rows are locked in ascending id order.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

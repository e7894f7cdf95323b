package repositories

import "context"

// TxFunc runs inside a transaction. Repositories reached through tx share it.
type TxFunc func(ctx context.Context, tx RepositoryProvider) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// RunInTx commits when fn returns nil and rolls back every write made
	// through tx otherwise. The error from fn is returned unchanged.
	RunInTx(ctx context.Context, fn TxFunc) error
}

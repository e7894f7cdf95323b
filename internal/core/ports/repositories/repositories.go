package repositories

// RepositoryProvider exposes the repositories of one store handle.
type RepositoryProvider interface {
	Clients() ClientRepositoryFacade
	Accounts() AccountRepositoryFacade
	Movements() MovementRepositoryFacade
}

// LedgerStore is the injected persistence handle used by the services.
type LedgerStore interface {
	RepositoryProvider
	TransactionManager
}

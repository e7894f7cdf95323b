package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main and pick the facades they need.
type ServiceContainer struct {
	Client ClientSvcFacade
	Ledger LedgerSvcFacade
}

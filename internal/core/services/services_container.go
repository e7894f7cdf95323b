package services

import (
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/SscSPs/bank_ledger/internal/platform/observability"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.LedgerStore, metrics *observability.Metrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Client: NewClientService(store, WithClientMetrics(metrics)),
		Ledger: NewLedgerService(store,
			WithMetrics(metrics),
			WithAccountNumberRetry(cfg.AccountNumberMaxAttempts, cfg.AccountNumberBackoff),
			WithDepositCeiling(cfg.DepositCeiling),
			WithStatementPageSize(cfg.StatementPageSize),
		),
	}
}

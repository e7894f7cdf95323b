package mapping

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		AccountNumber:  d.AccountNumber,
		ClientID:       d.ClientID,
		Kind:           models.AccountKind(d.Kind),
		Balance:        d.Balance,
		OverdraftLimit: d.OverdraftLimit,
		DailyLimit:     d.DailyLimit,
		Blocked:        d.Blocked,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		AccountNumber:  m.AccountNumber,
		ClientID:       m.ClientID,
		Kind:           domain.AccountKind(m.Kind),
		Balance:        m.Balance,
		OverdraftLimit: m.OverdraftLimit,
		DailyLimit:     m.DailyLimit,
		Blocked:        m.Blocked,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

package mapping

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/models"
)

// ToModelAuditFields fills the NOT NULL audit columns. A row that was never
// touched after creation reports its creator as the last updater.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	m := models.AuditFields{
		CreatedAt:     d.CreatedAt.UTC(),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt.UTC(),
		LastUpdatedBy: d.LastUpdatedBy,
	}
	if d.LastUpdatedAt.IsZero() {
		m.LastUpdatedAt = m.CreatedAt
	}
	if d.LastUpdatedBy == "" {
		m.LastUpdatedBy = d.CreatedBy
	}
	return m
}

// ToDomainAuditFields converts stored audit columns; pgx hands timestamptz
// back in the local zone, so times are normalised to UTC.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt.UTC(),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

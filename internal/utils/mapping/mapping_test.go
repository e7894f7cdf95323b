package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMovementMapping_NullableAccounts(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	deposit := domain.Movement{
		MovementID:           "m1",
		DestinationAccountID: "acc-1",
		Kind:                 domain.OpDeposit,
		Amount:               decimal.NewFromInt(100),
		Fee:                  decimal.Zero,
		Status:               domain.MovementCompleted,
		CreatedAt:            now,
	}

	m := ToModelMovement(deposit)
	assert.Nil(t, m.OriginAccountID)
	if assert.NotNil(t, m.DestinationAccountID) {
		assert.Equal(t, "acc-1", *m.DestinationAccountID)
	}
	assert.Equal(t, "deposit", m.Kind)

	back := ToDomainMovement(m)
	assert.Equal(t, deposit, back)
}

func TestAccountMapping_KeepsKindAndLimits(t *testing.T) {
	acc := domain.NewCheckingAccount("acc-1", "12345-6", "cli-1", decimal.NewFromInt(500),
		domain.NewAuditFields("op", time.Unix(0, 0).UTC()))

	m := ToModelAccount(*acc)
	assert.Equal(t, "checking", string(m.Kind))
	assert.True(t, m.DailyLimit.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, *acc, ToDomainAccount(m))
}

func TestAuditFieldsMapping_UntouchedRowUsesCreator(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m := ToModelAuditFields(domain.AuditFields{CreatedAt: created, CreatedBy: "op-1"})

	assert.Equal(t, created, m.LastUpdatedAt)
	assert.Equal(t, "op-1", m.LastUpdatedBy)
}

func TestAuditFieldsMapping_NormalisesToUTC(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	local := time.Date(2024, 3, 1, 7, 0, 0, 0, sp)
	d := ToDomainAuditFields(ToModelAuditFields(domain.NewAuditFields("op-1", local)))

	assert.Equal(t, time.UTC, d.CreatedAt.Location())
	assert.True(t, d.CreatedAt.Equal(local))
	assert.Equal(t, d.CreatedAt, d.LastUpdatedAt)
	assert.Equal(t, "op-1", d.LastUpdatedBy)
}

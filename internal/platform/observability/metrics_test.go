package observability

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "rejected", Outcome(fmt.Errorf("%w: nope", apperrors.ErrValidation)))
	assert.Equal(t, "rejected", Outcome(apperrors.ErrNotFound))
	assert.Equal(t, "conflict", Outcome(apperrors.ErrConflict))
	assert.Equal(t, "error", Outcome(assert.AnError))
}

func TestMetrics_RecordOperation(t *testing.T) {
	m := NewMetrics()
	m.RecordOperation("withdraw", time.Millisecond, nil)
	m.RecordOperation("withdraw", time.Millisecond, nil)
	m.RecordOperation("withdraw", time.Millisecond, apperrors.ErrValidation)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("withdraw", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("withdraw", "rejected")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("deposit", time.Second, nil)
		m.RecordHTTPRequest("GET", "/health", "200", time.Second)
		m.RecordAccountNumberAttempts(1)
	})
}

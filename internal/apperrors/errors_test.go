package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"nil", nil, apperrors.KindNone},
		{"wrapped not found", fmt.Errorf("account 12345-6: %w", apperrors.ErrNotFound), apperrors.KindNotFound},
		{"validation", fmt.Errorf("%w: insufficient funds", apperrors.ErrValidation), apperrors.KindValidation},
		{"duplicate", apperrors.ErrDuplicate, apperrors.KindDuplicate},
		{"conflict", fmt.Errorf("retry: %w", apperrors.ErrConflict), apperrors.KindConflict},
		{"internal sentinel", apperrors.ErrInternal, apperrors.KindInternal},
		{"plain error", errors.New("connection reset"), apperrors.KindInternal},
		{"not found beats validation", fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrNotFound), apperrors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

package repositories

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
)

// ErrAccountNumberTaken is returned by SaveAccount when another account
// already owns the number. It wraps apperrors.ErrDuplicate.
var ErrAccountNumberTaken = fmt.Errorf("%w: account number already exists", apperrors.ErrDuplicate)

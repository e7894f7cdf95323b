package domain

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
)

// Lookup misses.
var (
	ErrClientNotFound    = fmt.Errorf("%w: client not found", apperrors.ErrNotFound)
	ErrAccountNotFound   = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrNoCheckingAccount = fmt.Errorf("%w: client has no checking account", apperrors.ErrNotFound)
)

// Business rule violations. Each wraps apperrors.ErrValidation so callers can
// match either the specific rule or the error kind.
var (
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrAccountBlocked       = fmt.Errorf("%w: account is blocked", apperrors.ErrValidation)
	ErrInsufficientFunds    = fmt.Errorf("%w: insufficient funds", apperrors.ErrValidation)
	ErrDailyLimitExceeded   = fmt.Errorf("%w: daily limit exceeded", apperrors.ErrValidation)
	ErrLimitBelowUsage      = fmt.Errorf("%w: overdraft limit below current usage", apperrors.ErrValidation)
	ErrLimitOutOfRange      = fmt.Errorf("%w: overdraft limit out of range", apperrors.ErrValidation)
	ErrSameAccount          = fmt.Errorf("%w: origin and destination are the same account", apperrors.ErrValidation)
	ErrAmountTooLarge       = fmt.Errorf("%w: amount above the deposit ceiling", apperrors.ErrValidation)
	ErrDuplicateAccountKind = fmt.Errorf("%w: client already holds an account of this kind", apperrors.ErrValidation)
	ErrClientInactive       = fmt.Errorf("%w: client is inactive", apperrors.ErrValidation)
	ErrNotAChecking         = fmt.Errorf("%w: account is not a checking account", apperrors.ErrValidation)
	ErrNotASavings          = fmt.Errorf("%w: account is not a savings account", apperrors.ErrValidation)
	ErrAlreadyBlocked       = fmt.Errorf("%w: account is already blocked", apperrors.ErrValidation)
	ErrNotBlocked           = fmt.Errorf("%w: account is not blocked", apperrors.ErrValidation)
	ErrUnknownOperation     = fmt.Errorf("%w: unknown operation kind", apperrors.ErrValidation)
)

// ErrAccountNumberExhausted is returned when no unused account number could be
// drawn within the configured attempts.
var ErrAccountNumberExhausted = fmt.Errorf("%w: could not allocate a unique account number", apperrors.ErrConflict)

// Package apperrors holds the sentinel kinds every layer wraps its errors in.
// Handlers pick a status code and metrics pick an outcome label from the kind,
// never from the concrete domain error.
package apperrors

import "errors"

var (
	// ErrNotFound indicates that a requested client, account or movement does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates that input data or a business rule check failed.
	ErrValidation = errors.New("validation error")
	// ErrDuplicate indicates a unique key such as a CPF or account number is already taken.
	ErrDuplicate = errors.New("resource already exists")
	// ErrConflict indicates a write collided with existing state and could not be resolved.
	ErrConflict = errors.New("conflict")
	// ErrInternal indicates the store or another dependency failed unexpectedly.
	ErrInternal = errors.New("internal error")
)

// Kind is the coarse class of an error.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindValidation
	KindDuplicate
	KindConflict
	KindInternal
)

// KindOf classifies err. When err wraps more than one sentinel, not-found wins
// over validation, which wins over duplicate and conflict. Unwrapped errors
// are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrConflict):
		return KindConflict
	}
	return KindInternal
}

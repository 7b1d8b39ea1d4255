// Package apperr defines the sentinel errors shared across the pattern chapters.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrAccessDenied      = errors.New("access denied")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrClosed            = errors.New("closed")
)

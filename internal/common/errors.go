// Package common defines shared constants and sentinel errors used across
// client and server layers of QuoteKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Precondition errors.
	ErrUnauthenticated = errors.New("unauthenticated")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors (field-level, see validation.Errors).
	ErrValidation = errors.New("validation failed")

	// Blob errors.
	ErrBlobKey = errors.New("blob key cannot be derived from reference")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, invalid or expired bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated identity does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a record with the same unique key is already stored.
	ErrAlreadyExists = errors.New("already exists")

	// ErrRateLimited indicates temporary lockout of token issuance.
	ErrRateLimited = errors.New("rate limited")
)

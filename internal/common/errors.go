// Package common defines shared constants and sentinel errors used across
// client and server layers of the expense tracker. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrBadRequest = errors.New("invalid request")

	// Authentication boundary errors. The messages are part of the wire
	// contract and are shown to the caller as is.
	ErrAuthRequired         = errors.New("Authorization token must be provided")
	ErrAuthMalformed        = errors.New("Authorization token must be Bearer [token]")
	ErrAuthInvalidOrExpired = errors.New("invalid/expired token")

	// Token errors (invalid signature, malformed structure, expiry).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Identity errors.
	ErrInvalidEmailFormat = errors.New("Invalid email format")
	ErrEmailAlreadyInUse  = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Invalid email/password")

	// Tenancy errors.
	ErrNoPrincipal = errors.New("no authenticated user")
)

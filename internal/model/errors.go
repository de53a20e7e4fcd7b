package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by the account store when the email
	// unique constraint is violated. The constraint is the authority on
	// duplicates, not any earlier lookup.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrRoleNotConfigured means a role the system depends on is missing
	// from the database. This is a deployment fault, never a user error.
	ErrRoleNotConfigured = errors.New("required role is not configured")

	// ErrTokenConsumed is returned when a confirmation token has already
	// been used or never existed. Tokens are single-use.
	ErrTokenConsumed = errors.New("confirmation token already consumed or unknown")

	// ErrInvalidCredentials is returned on login with a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotActive is returned on login for unconfirmed accounts.
	ErrAccountNotActive = errors.New("account is not active")
)

var (
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)

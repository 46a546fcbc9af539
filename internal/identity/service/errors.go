package service

import "errors"

// Error taxonomy of the identity core. Anything else returned by a service is
// an infrastructure failure.
var (
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid reset token")
	ErrTokenExpired       = errors.New("reset token expired")
	ErrForbidden          = errors.New("operation not permitted")

	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidSession = errors.New("invalid session token")
)

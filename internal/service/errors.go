package service

import "errors"

// Service-boundary error kinds. Handlers translate these into the
// response envelope; anything else is treated as internal and never
// shown to the client.
var (
	ErrValidation         = errors.New("all fields are required")
	ErrConflict           = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken deliberately does not distinguish a wrong one-time
	// token from an expired one.
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrNotFound             = errors.New("user not found")
	ErrNotificationDelivery = errors.New("failed to send email")
)

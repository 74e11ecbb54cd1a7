package store

import (
	"context"
	"errors"
	"time"

	"nimbushost/internal/models"
)

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotFound       = errors.New("user not found")
	// ErrNoActiveToken covers both an unknown token and an expired one;
	// callers must not be able to tell the two apart.
	ErrNoActiveToken = errors.New("no active token")
)

// UserStore is the credential store the auth service runs against.
type UserStore interface {
	// Create persists a new user and assigns its id. Fails with
	// ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *models.User) (*models.User, error)

	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	// ByEmailOrName matches either identifier; an empty string matches
	// nothing on that side.
	ByEmailOrName(ctx context.Context, email, name string) (*models.User, error)

	// ConsumeVerifyToken marks the matching user verified and clears the
	// token pair in one conditional update, so a token is consumed at
	// most once even under concurrent requests.
	ConsumeVerifyToken(ctx context.Context, code string, now time.Time) (*models.User, error)

	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error

	// ConsumeResetToken replaces the password hash and clears the reset
	// pair with the same single-consumption guarantee.
	ConsumeResetToken(ctx context.Context, token, newHash string, now time.Time) (*models.User, error)

	RecordLogin(ctx context.Context, id string, at time.Time) error
}

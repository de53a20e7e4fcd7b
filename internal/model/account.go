package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStatus enumerates account lifecycle states.
type AccountStatus string

const (
	// StatusUnconfirmed is assigned at registration when email
	// confirmation is required. The only transition out of it is to
	// StatusActive, via a matching confirmation token.
	StatusUnconfirmed AccountStatus = "unconfirmed"
	// StatusActive accounts may log in. Terminal for this service.
	StatusActive AccountStatus = "active"
)

// AccountStore defines persistence operations for accounts.
//
// Create receives the plaintext password and hashes it behind the store
// boundary; the hash never leaves the store, the plaintext never enters
// it twice. Create also assigns the initial role in the same transaction
// so an account is never query-visible without a role.
type AccountStore interface {
	Create(ctx context.Context, account Account, password string, roleID uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	SetConfirmationToken(ctx context.Context, id uuid.UUID, token string) error
	// ConfirmByToken flips unconfirmed -> active and clears the token in
	// a single statement. Returns ErrTokenConsumed when no row matched.
	ConfirmByToken(ctx context.Context, token string) (Account, error)
	VerifyPassword(ctx context.Context, email, password string) (Account, error)
}

// Account represents a registered user of the clinic system.
type Account struct {
	ID                uuid.UUID
	Name              string
	LastName          string
	Email             string
	Status            AccountStatus
	Lang              string
	Phone             string
	Birthday          *time.Time
	ConfirmationToken *string
	TermsAcceptedAt   *time.Time
	Roles             []Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

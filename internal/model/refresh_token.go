package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists issued refresh tokens for rotation and
// revocation checks.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByAccount(ctx context.Context, accountID uuid.UUID) error
}

// RefreshToken is the stored state of an issued refresh token.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	AccountID      uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package model

import "github.com/google/uuid"

// TokenManager issues and validates authentication tokens.
type TokenManager interface {
	GenerateAccessToken(accountID uuid.UUID) (string, error)
	GenerateRefreshToken(accountID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (accountID uuid.UUID, jti string, err error)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/mocks"
	"github.com/dentix/clinic-server/internal/model"
)

func TestTokenService_Issue(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	manager.On("GenerateAccessToken", accountID).Return("access", nil)
	manager.On("GenerateRefreshToken", accountID).Return("refresh", "jti-1", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-1" && rt.AccountID == accountID && len(rt.TokenHash) == 32
	})).Return(nil)

	access, refresh, err := s.Issue(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "access", access)
	assert.Equal(t, "refresh", refresh)
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_Rotation(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	manager.On("ParseRefreshToken", "old-refresh").Return(accountID, "jti-old", nil)
	store.On("GetByJTI", mock.Anything, "jti-old").Return(model.RefreshToken{
		JTI:       "jti-old",
		AccountID: accountID,
		TokenHash: hashRefresh("old-refresh"),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	store.On("RevokeByJTI", mock.Anything, "jti-old").Return(nil)
	manager.On("GenerateAccessToken", accountID).Return("new-access", nil)
	manager.On("GenerateRefreshToken", accountID).Return("new-refresh", "jti-new", nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-new" && rt.RotatedFromJTI != nil && *rt.RotatedFromJTI == "jti-old"
	})).Return(nil)

	access, refresh, err := s.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", access)
	assert.Equal(t, "new-refresh", refresh)
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_Revoked(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	revokedAt := time.Now()
	manager.On("ParseRefreshToken", "refresh").Return(accountID, "jti", nil)
	store.On("GetByJTI", mock.Anything, "jti").Return(model.RefreshToken{
		TokenHash: hashRefresh("refresh"),
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	_, _, err := s.Refresh(context.Background(), "refresh")
	require.ErrorIs(t, err, model.ErrRefreshTokenRevoked)
}

func TestTokenService_Refresh_Expired(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	manager.On("ParseRefreshToken", "refresh").Return(accountID, "jti", nil)
	store.On("GetByJTI", mock.Anything, "jti").Return(model.RefreshToken{
		TokenHash: hashRefresh("refresh"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	_, _, err := s.Refresh(context.Background(), "refresh")
	require.ErrorIs(t, err, model.ErrRefreshTokenExpired)
}

func TestTokenService_Refresh_HashMismatch(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	manager.On("ParseRefreshToken", "presented").Return(accountID, "jti", nil)
	store.On("GetByJTI", mock.Anything, "jti").Return(model.RefreshToken{
		TokenHash: hashRefresh("stored-something-else"),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	_, _, err := s.Refresh(context.Background(), "presented")
	require.ErrorIs(t, err, model.ErrRefreshTokenMismatch)
}

func TestTokenService_RevokeByToken(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	manager.On("ParseRefreshToken", "refresh").Return(uuid.New(), "jti", nil)
	store.On("RevokeByJTI", mock.Anything, "jti").Return(nil)

	require.NoError(t, s.RevokeByToken(context.Background(), "refresh"))
	store.AssertExpectations(t)
}

func TestTokenService_GetAccountID(t *testing.T) {
	manager := &mocks.TokenManager{}
	store := &mocks.RefreshTokenStore{}
	s := NewTokenService(manager, store, logger.New(0))

	accountID := uuid.New()
	manager.On("ParseAccessToken", "access").Return(accountID, nil)

	got, err := s.GetAccountID(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/mocks"
	"github.com/dentix/clinic-server/internal/model"
)

func newAuthFixture() (*Auth, *mocks.AccountStore, *mocks.RoleStore, *mocks.TokenManager, *mocks.RefreshTokenStore) {
	accounts := &mocks.AccountStore{}
	roles := &mocks.RoleStore{}
	manager := &mocks.TokenManager{}
	refreshStore := &mocks.RefreshTokenStore{}
	log := logger.New(0)
	tokens := NewTokenService(manager, refreshStore, log)
	return NewAuth(accounts, roles, tokens, log), accounts, roles, manager, refreshStore
}

func TestAuth_Login_Success(t *testing.T) {
	a, accounts, roles, manager, refreshStore := newAuthFixture()

	accountID := uuid.New()
	accounts.On("VerifyPassword", mock.Anything, "ana@clinic.test", "secret1").
		Return(model.Account{ID: accountID, Email: "ana@clinic.test", Status: model.StatusActive}, nil)
	roles.On("ListForAccount", mock.Anything, accountID).
		Return([]model.Role{{ID: uuid.New(), Name: model.RoleUser}}, nil)
	manager.On("GenerateAccessToken", accountID).Return("access-token", nil)
	manager.On("GenerateRefreshToken", accountID).Return("refresh-token", "jti-1", nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	session, err := a.Login(context.Background(), "ana@clinic.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	require.Len(t, session.Account.Roles, 1)
	assert.Equal(t, model.RoleUser, session.Account.Roles[0].Name)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	a, accounts, _, _, _ := newAuthFixture()

	accounts.On("VerifyPassword", mock.Anything, "ana@clinic.test", "wrong").
		Return(model.Account{}, model.ErrInvalidCredentials)

	_, err := a.Login(context.Background(), "ana@clinic.test", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_UnconfirmedAccount(t *testing.T) {
	a, accounts, _, _, _ := newAuthFixture()

	accounts.On("VerifyPassword", mock.Anything, "ana@clinic.test", "secret1").
		Return(model.Account{ID: uuid.New(), Status: model.StatusUnconfirmed}, nil)

	_, err := a.Login(context.Background(), "ana@clinic.test", "secret1")
	require.ErrorIs(t, err, model.ErrAccountNotActive)
}

func TestAuth_Login_RoleListError(t *testing.T) {
	a, accounts, roles, _, _ := newAuthFixture()

	accountID := uuid.New()
	accounts.On("VerifyPassword", mock.Anything, mock.Anything, mock.Anything).
		Return(model.Account{ID: accountID, Status: model.StatusActive}, nil)
	roles.On("ListForAccount", mock.Anything, accountID).
		Return(nil, errors.New("connection reset"))

	_, err := a.Login(context.Background(), "ana@clinic.test", "secret1")
	require.Error(t, err)
}

func TestAuth_HasRole(t *testing.T) {
	a, _, roles, _, _ := newAuthFixture()

	accountID := uuid.New()
	roles.On("ListForAccount", mock.Anything, accountID).
		Return([]model.Role{{Name: model.RoleUser}, {Name: model.RoleAdmin}}, nil)

	has, err := a.HasRole(context.Background(), accountID, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = a.HasRole(context.Background(), accountID, "receptionist")
	require.NoError(t, err)
	assert.False(t, has)
}

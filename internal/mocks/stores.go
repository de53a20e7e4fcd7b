// Package mocks provides testify mocks for the model ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dentix/clinic-server/internal/model"
)

// AccountStore is a mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func (m *AccountStore) Create(ctx context.Context, account model.Account, password string, roleID uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, account, password, roleID)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *AccountStore) Update(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) SetConfirmationToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *AccountStore) ConfirmByToken(ctx context.Context, token string) (model.Account, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) VerifyPassword(ctx context.Context, email, password string) (model.Account, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.Account), args.Error(1)
}

// RoleStore is a mock of model.RoleStore.
type RoleStore struct {
	mock.Mock
}

func (m *RoleStore) GetByName(ctx context.Context, name string) (model.Role, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *RoleStore) Assign(ctx context.Context, accountID, roleID uuid.UUID) error {
	args := m.Called(ctx, accountID, roleID)
	return args.Error(0)
}

func (m *RoleStore) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.Role, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

// AuditStore is a mock of model.AuditStore.
type AuditStore struct {
	mock.Mock
}

func (m *AuditStore) Record(ctx context.Context, entry model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditStore) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.AuditEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}

// SettingsStore is a mock of model.SettingsStore.
type SettingsStore struct {
	mock.Mock
}

func (m *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingsStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// ConfirmationSender is a mock of model.ConfirmationSender.
type ConfirmationSender struct {
	mock.Mock
}

func (m *ConfirmationSender) SendConfirmation(ctx context.Context, account model.Account, token string) error {
	args := m.Called(ctx, account, token)
	return args.Error(0)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *RefreshTokenStore) RevokeAllByAccount(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(accountID uuid.UUID) (string, error) {
	args := m.Called(accountID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(accountID uuid.UUID) (string, string, error) {
	args := m.Called(accountID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// Auth handles credential verification and session issuance.
type Auth struct {
	accountStore model.AccountStore
	roleStore    model.RoleStore
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	accountStore model.AccountStore,
	roleStore model.RoleStore,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accountStore: accountStore,
		roleStore:    roleStore,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Session is the result of a successful login.
type Session struct {
	Account      model.Account
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues a token pair. Unconfirmed
// accounts cannot log in until the confirmation token is consumed.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	a.logger.Debug("Auth service: processing login",
		"email", email)

	account, err := a.accountStore.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			return Session{}, model.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("failed to verify credentials: %w", err)
	}

	if account.Status != model.StatusActive {
		a.logger.Info("Auth service: login rejected for inactive account",
			"account_id", account.ID,
			"status", string(account.Status))
		return Session{}, model.ErrAccountNotActive
	}

	roles, err := a.roleStore.ListForAccount(ctx, account.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to list roles: %w", err)
	}
	account.Roles = roles

	accessToken, refreshToken, err := a.tokenService.Issue(ctx, account.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"account_id", account.ID)

	return Session{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// HasRole reports whether the account carries the named role. Used by
// the role-gating middleware.
func (a *Auth) HasRole(ctx context.Context, accountID uuid.UUID, name string) (bool, error) {
	roles, err := a.roleStore.ListForAccount(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to list roles: %w", err)
	}
	for _, role := range roles {
		if role.Name == name {
			return true, nil
		}
	}
	return false, nil
}

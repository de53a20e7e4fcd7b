package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// Account implements administrative account management: the create/edit
// operations an administrator performs with explicit role and status
// selection, unlike self-registration.
type Account struct {
	accountStore model.AccountStore
	roleStore    model.RoleStore
	auditStore   model.AuditStore
	logger       *logger.Logger
}

func NewAccount(
	accountStore model.AccountStore,
	roleStore model.RoleStore,
	auditStore model.AuditStore,
	logger *logger.Logger,
) *Account {
	return &Account{
		accountStore: accountStore,
		roleStore:    roleStore,
		auditStore:   auditStore,
		logger:       logger,
	}
}

// CreateAccountParams are the admin-supplied fields for a new account.
type CreateAccountParams struct {
	Name     string
	LastName string
	Email    string
	Password string
	Phone    string
	Birthday *time.Time
	Lang     string
	Role     string
	Status   model.AccountStatus
}

// UpdateAccountParams are the editable fields of an existing account.
type UpdateAccountParams struct {
	ID       uuid.UUID
	Name     string
	LastName string
	Email    string
	Phone    string
	Birthday *time.Time
	Lang     string
	Role     string
	Status   model.AccountStatus
}

// Create registers an account on behalf of an administrator. The
// selected role must exist; there is no default fallback here.
func (s *Account) Create(ctx context.Context, actorID uuid.UUID, params CreateAccountParams) (model.Account, error) {
	role, err := s.roleStore.GetByName(ctx, params.Role)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, model.ErrRoleNotConfigured
		}
		return model.Account{}, fmt.Errorf("failed to get role: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:        uuid.New(),
		Name:      params.Name,
		LastName:  params.LastName,
		Email:     params.Email,
		Status:    params.Status,
		Lang:      params.Lang,
		Phone:     params.Phone,
		Birthday:  params.Birthday,
		CreatedAt: now,
		UpdatedAt: now,
	}

	account, err = s.accountStore.Create(ctx, account, params.Password, role.ID)
	if err != nil {
		return model.Account{}, err
	}

	s.audit(ctx, "account created by administrator", account.ID)

	s.logger.Info("Account service: account created",
		"account_id", account.ID,
		"actor_id", actorID,
		"role", role.Name)

	return account, nil
}

// Update edits an account and re-points its role when changed.
func (s *Account) Update(ctx context.Context, actorID uuid.UUID, params UpdateAccountParams) (model.Account, error) {
	account, err := s.accountStore.GetByID(ctx, params.ID)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	account.Name = params.Name
	account.LastName = params.LastName
	account.Email = params.Email
	account.Phone = params.Phone
	account.Birthday = params.Birthday
	account.Status = params.Status
	if params.Lang != "" {
		account.Lang = params.Lang
	}
	account.UpdatedAt = time.Now()

	account, err = s.accountStore.Update(ctx, account)
	if err != nil {
		return model.Account{}, err
	}

	if params.Role != "" {
		role, err := s.roleStore.GetByName(ctx, params.Role)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.Account{}, model.ErrRoleNotConfigured
			}
			return model.Account{}, fmt.Errorf("failed to get role: %w", err)
		}
		if err := s.roleStore.Assign(ctx, account.ID, role.ID); err != nil {
			return model.Account{}, fmt.Errorf("failed to assign role: %w", err)
		}
	}

	s.audit(ctx, "account updated by administrator", account.ID)

	s.logger.Info("Account service: account updated",
		"account_id", account.ID,
		"actor_id", actorID)

	return account, nil
}

// Get returns an account with its roles attached.
func (s *Account) Get(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}

	roles, err := s.roleStore.ListForAccount(ctx, id)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to list roles: %w", err)
	}
	account.Roles = roles

	return account, nil
}

// List returns all accounts.
func (s *Account) List(ctx context.Context) ([]model.Account, error) {
	return s.accountStore.List(ctx)
}

func (s *Account) audit(ctx context.Context, message string, accountID uuid.UUID) {
	entry := model.AuditEntry{
		ID:        uuid.New(),
		Actor:     model.ActorAdmin,
		Message:   message,
		AccountID: accountID,
		CreatedAt: time.Now(),
	}
	if err := s.auditStore.Record(ctx, entry); err != nil {
		s.logger.Warn("Account service: audit write failed",
			"message", message,
			"account_id", accountID,
			"error", err.Error())
	}
}

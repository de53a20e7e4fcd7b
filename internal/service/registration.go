package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/validate"
)

// confirmationTokenBytes yields 60 URL-safe characters once encoded.
const confirmationTokenBytes = 45

// Registration orchestrates account self-registration: validation,
// account and role creation, confirmation dispatch and audit trail.
type Registration struct {
	accountStore model.AccountStore
	roleStore    model.RoleStore
	auditStore   model.AuditStore
	sender       model.ConfirmationSender
	settings     *Settings
	logger       *logger.Logger
}

func NewRegistration(
	accountStore model.AccountStore,
	roleStore model.RoleStore,
	auditStore model.AuditStore,
	sender model.ConfirmationSender,
	settings *Settings,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		accountStore: accountStore,
		roleStore:    roleStore,
		auditStore:   auditStore,
		sender:       sender,
		settings:     settings,
		logger:       logger,
	}
}

// rules builds the declarative validation set for a submission. The
// accept_terms rule participates only when the terms feature is on.
func rules(input model.RegisterInput, termsRequired bool) ([]validate.Rule, map[string]string) {
	values := map[string]string{
		"name":                  input.Name,
		"lastname":              input.LastName,
		"email":                 input.Email,
		"password":              input.Password,
		"password_confirmation": input.PasswordConfirmation,
		"accept_terms":          strconv.FormatBool(input.AcceptTerms),
	}

	set := []validate.Rule{
		validate.Required("name"),
		validate.Max("name", 30),
		validate.Required("lastname"),
		validate.Max("lastname", 30),
		validate.Required("email"),
		validate.Email("email"),
		validate.Max("email", 255),
		validate.Required("password"),
		validate.Min("password", 6),
		validate.Confirmed("password", input.PasswordConfirmation),
		validate.Required("password_confirmation"),
		validate.Min("password_confirmation", 6),
	}
	if termsRequired {
		set = append(set, validate.Accepted("accept_terms"))
	}

	return set, values
}

// Register validates the submission and creates the account. It
// returns *model.ValidationFailure (as error) for user-correctable
// input, model.ErrRoleNotConfigured for a missing default role, and a
// RegistrationOutcome on success.
func (s *Registration) Register(ctx context.Context, input model.RegisterInput) (model.RegistrationOutcome, error) {
	s.logger.Debug("Registration service: processing submission",
		"email", input.Email)

	// Feature flags are read once per call. They must not change
	// mid-flight even if settings are edited concurrently.
	flags, err := s.settings.RegistrationSnapshot(ctx)
	if err != nil {
		return model.RegistrationOutcome{}, fmt.Errorf("failed to snapshot settings: %w", err)
	}

	set, values := rules(input, flags.TermsRequired)
	violations := validate.Evaluate(values, set)

	// Uniqueness participates in the collected violations so a taken
	// email is reported alongside other field problems. It is checked
	// only when the email itself passed its own rules. The unique index
	// remains the authority: a concurrent duplicate still fails at
	// insert time.
	if len(violations["email"]) == 0 {
		_, err = s.accountStore.GetByEmail(ctx, input.Email)
		if err == nil {
			violations["email"] = append(violations["email"], msgEmailTaken)
		} else if !errors.Is(err, model.ErrNotFound) {
			return model.RegistrationOutcome{}, fmt.Errorf("failed to check email: %w", err)
		}
	}

	if len(violations) > 0 {
		return model.RegistrationOutcome{}, &model.ValidationFailure{Fields: violations}
	}

	role, err := s.roleStore.GetByName(ctx, model.RoleUser)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Registration service: default role missing",
				"role", model.RoleUser)
			return model.RegistrationOutcome{}, model.ErrRoleNotConfigured
		}
		return model.RegistrationOutcome{}, fmt.Errorf("failed to get default role: %w", err)
	}

	status := model.StatusActive
	if flags.EmailConfirmationRequired {
		status = model.StatusUnconfirmed
	}

	now := time.Now()
	account := model.Account{
		ID:        uuid.New(),
		Name:      input.Name,
		LastName:  input.LastName,
		Email:     input.Email,
		Status:    status,
		Lang:      flags.DefaultLanguage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if flags.TermsRequired {
		account.TermsAcceptedAt = &now
	}

	account, err = s.accountStore.Create(ctx, account, input.Password, role.ID)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.RegistrationOutcome{}, duplicateEmailFailure()
		}
		return model.RegistrationOutcome{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.audit(ctx, model.ActorUser, "account created", account.ID)

	message := model.MsgAccountCreatedLogin
	if flags.EmailConfirmationRequired {
		if err := s.dispatchConfirmation(ctx, account); err != nil {
			// Delivery trouble is contained; the account and role are
			// already persisted and the user is told to expect mail.
			s.logger.Error("Registration service: confirmation dispatch failed",
				"account_id", account.ID,
				"error", err.Error())
		}
		message = model.MsgAccountCreatedConfirm
	}

	s.logger.Info("Registration service: account registered",
		"account_id", account.ID,
		"status", string(account.Status))

	return model.RegistrationOutcome{
		AccountID: account.ID,
		Message:   message,
	}, nil
}

// Confirm consumes a confirmation token, transitioning the account
// from unconfirmed to active. Tokens are single-use: the store clears
// the token in the same statement that flips the status.
func (s *Registration) Confirm(ctx context.Context, token string) (model.Account, error) {
	account, err := s.accountStore.ConfirmByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrTokenConsumed) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to confirm account: %w", err)
	}

	s.audit(ctx, model.ActorSystem, "account confirmed", account.ID)

	s.logger.Info("Registration service: account confirmed",
		"account_id", account.ID)

	return account, nil
}

// dispatchConfirmation persists the token before handing the message
// to the sender, so a crash between the two leaves a resendable token
// rather than a dangling email.
func (s *Registration) dispatchConfirmation(ctx context.Context, account model.Account) error {
	token, err := generateConfirmationToken()
	if err != nil {
		return fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	if err := s.accountStore.SetConfirmationToken(ctx, account.ID, token); err != nil {
		return fmt.Errorf("failed to persist confirmation token: %w", err)
	}

	if err := s.sender.SendConfirmation(ctx, account, token); err != nil {
		return fmt.Errorf("failed to dispatch confirmation: %w", err)
	}

	s.audit(ctx, model.ActorSystem, "confirmation email sent", account.ID)

	return nil
}

// audit writes a best-effort trail entry. Failures are logged and
// swallowed; they never alter the caller-visible outcome.
func (s *Registration) audit(ctx context.Context, actor, message string, accountID uuid.UUID) {
	entry := model.AuditEntry{
		ID:        uuid.New(),
		Actor:     actor,
		Message:   message,
		AccountID: accountID,
		CreatedAt: time.Now(),
	}
	if err := s.auditStore.Record(ctx, entry); err != nil {
		s.logger.Warn("Registration service: audit write failed",
			"actor", actor,
			"message", message,
			"account_id", accountID,
			"error", err.Error())
	}
}

const msgEmailTaken = "The email has already been taken."

func duplicateEmailFailure() *model.ValidationFailure {
	f := &model.ValidationFailure{}
	f.Add("email", msgEmailTaken)
	return f
}

func generateConfirmationToken() (string, error) {
	buf := make([]byte, confirmationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

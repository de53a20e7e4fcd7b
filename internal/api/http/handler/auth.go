package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/service"
)

// RegistrationService defines registration and confirmation operations.
type RegistrationService interface {
	Register(ctx context.Context, input model.RegisterInput) (model.RegistrationOutcome, error)
	Confirm(ctx context.Context, token string) (model.Account, error)
}

// AuthService defines login operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (service.Session, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	RevokeByToken(ctx context.Context, refreshToken string) error
}

// Auth handles the public authentication endpoints.
type Auth struct {
	registration RegistrationService
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(registration RegistrationService, authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		registration: registration,
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type registerRequest struct {
	Name                 string `json:"name"`
	LastName             string `json:"lastname"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	AcceptTerms          bool   `json:"accept_terms"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles a registration submission.
func (h *Auth) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	outcome, err := h.registration.Register(c.UserContext(), model.RegisterInput{
		Name:                 body.Name,
		LastName:             body.LastName,
		Email:                body.Email,
		Password:             body.Password,
		PasswordConfirmation: body.PasswordConfirmation,
		AcceptTerms:          body.AcceptTerms,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    outcome.Message,
		"account_id": outcome.AccountID,
	})
}

// Confirm consumes a confirmation token from the email link.
func (h *Auth) Confirm(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing token")
	}

	account, err := h.registration.Confirm(c.UserContext(), token)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Your account has been confirmed. You may now log in.",
		"account_id": account.ID,
	})
}

// Login verifies credentials and returns a token pair.
func (h *Auth) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	session, err := h.authService.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"account":       accountResponse(session.Account),
	})
}

// Refresh rotates a refresh token.
func (h *Auth) Refresh(c *fiber.Ctx) error {
	var body refreshRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	access, refresh, err := h.tokenService.Refresh(c.UserContext(), body.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	return c.JSON(fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout revokes the presented refresh token.
func (h *Auth) Logout(c *fiber.Ctx) error {
	var body refreshRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := h.tokenService.RevokeByToken(c.UserContext(), body.RefreshToken); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/service"
)

type stubRegistration struct {
	mock.Mock
}

func (s *stubRegistration) Register(ctx context.Context, input model.RegisterInput) (model.RegistrationOutcome, error) {
	args := s.Called(ctx, input)
	return args.Get(0).(model.RegistrationOutcome), args.Error(1)
}

func (s *stubRegistration) Confirm(ctx context.Context, token string) (model.Account, error) {
	args := s.Called(ctx, token)
	return args.Get(0).(model.Account), args.Error(1)
}

type stubAuthService struct {
	mock.Mock
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (service.Session, error) {
	args := s.Called(ctx, email, password)
	return args.Get(0).(service.Session), args.Error(1)
}

type stubTokenService struct {
	mock.Mock
}

func (s *stubTokenService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := s.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (s *stubTokenService) RevokeByToken(ctx context.Context, refreshToken string) error {
	args := s.Called(ctx, refreshToken)
	return args.Error(0)
}

func newAuthApp(registration *stubRegistration, authService *stubAuthService, tokens *stubTokenService) *fiber.App {
	h := NewAuth(registration, authService, tokens, logger.New(0))
	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Get("/api/auth/confirm/:token", h.Confirm)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/refresh", h.Refresh)
	app.Post("/api/auth/logout", h.Logout)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestAuthHandler_Register_Success(t *testing.T) {
	registration := &stubRegistration{}
	accountID := uuid.New()
	registration.On("Register", mock.Anything, mock.MatchedBy(func(in model.RegisterInput) bool {
		return in.Email == "ana@clinic.test" && in.AcceptTerms
	})).Return(model.RegistrationOutcome{AccountID: accountID, Message: model.MsgAccountCreatedConfirm}, nil)

	app := newAuthApp(registration, &stubAuthService{}, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{
		"name": "Ana",
		"lastname": "Torres",
		"email": "ana@clinic.test",
		"password": "secret1",
		"password_confirmation": "secret1",
		"accept_terms": true
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, model.MsgAccountCreatedConfirm, payload["message"])
	assert.Equal(t, accountID.String(), payload["account_id"])
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	registration := &stubRegistration{}
	failure := &model.ValidationFailure{}
	failure.Add("email", "The email field is required.")
	registration.On("Register", mock.Anything, mock.Anything).
		Return(model.RegistrationOutcome{}, failure)

	app := newAuthApp(registration, &stubAuthService{}, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, true, payload["validator"])

	fields, ok := payload["message"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
}

func TestAuthHandler_Register_RoleMissing(t *testing.T) {
	registration := &stubRegistration{}
	registration.On("Register", mock.Anything, mock.Anything).
		Return(model.RegistrationOutcome{}, model.ErrRoleNotConfigured)

	app := newAuthApp(registration, &stubAuthService{}, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAuthHandler_Confirm_Success(t *testing.T) {
	registration := &stubRegistration{}
	accountID := uuid.New()
	registration.On("Confirm", mock.Anything, "tok123").
		Return(model.Account{ID: accountID, Status: model.StatusActive}, nil)

	app := newAuthApp(registration, &stubAuthService{}, &stubTokenService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/confirm/tok123", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, true, payload["success"])
}

func TestAuthHandler_Confirm_ConsumedToken(t *testing.T) {
	registration := &stubRegistration{}
	registration.On("Confirm", mock.Anything, "used").
		Return(model.Account{}, model.ErrTokenConsumed)

	app := newAuthApp(registration, &stubAuthService{}, &stubTokenService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth/confirm/used", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	authService := &stubAuthService{}
	accountID := uuid.New()
	authService.On("Login", mock.Anything, "ana@clinic.test", "secret1").
		Return(service.Session{
			Account:      model.Account{ID: accountID, Email: "ana@clinic.test", Status: model.StatusActive},
			AccessToken:  "access",
			RefreshToken: "refresh",
		}, nil)

	app := newAuthApp(&stubRegistration{}, authService, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"ana@clinic.test","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "access", payload["access_token"])
	assert.Equal(t, "refresh", payload["refresh_token"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	authService := &stubAuthService{}
	authService.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(service.Session{}, model.ErrInvalidCredentials)

	app := newAuthApp(&stubRegistration{}, authService, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"x","password":"y"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	authService := &stubAuthService{}
	authService.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(service.Session{}, model.ErrAccountNotActive)

	app := newAuthApp(&stubRegistration{}, authService, &stubTokenService{})

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"x","password":"y"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthHandler_Refresh(t *testing.T) {
	tokens := &stubTokenService{}
	tokens.On("Refresh", mock.Anything, "old").Return("new-access", "new-refresh", nil)

	app := newAuthApp(&stubRegistration{}, &stubAuthService{}, tokens)

	req := httptest.NewRequest("POST", "/api/auth/refresh", strings.NewReader(`{"refresh_token":"old"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "new-access", payload["access_token"])
	assert.Equal(t, "new-refresh", payload["refresh_token"])
}

func TestAuthHandler_Logout(t *testing.T) {
	tokens := &stubTokenService{}
	tokens.On("RevokeByToken", mock.Anything, "refresh").Return(nil)

	app := newAuthApp(&stubRegistration{}, &stubAuthService{}, tokens)

	req := httptest.NewRequest("POST", "/api/auth/logout", strings.NewReader(`{"refresh_token":"refresh"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	tokens.AssertExpectations(t)
}

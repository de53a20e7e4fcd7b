package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/api/http/middleware"
	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/service"
)

// AccountService defines administrative account management operations.
type AccountService interface {
	Create(ctx context.Context, actorID uuid.UUID, params service.CreateAccountParams) (model.Account, error)
	Update(ctx context.Context, actorID uuid.UUID, params service.UpdateAccountParams) (model.Account, error)
	Get(ctx context.Context, id uuid.UUID) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
}

// Account handles the admin account management endpoints.
type Account struct {
	service AccountService
	logger  *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(service AccountService, logger *logger.Logger) *Account {
	return &Account{
		service: service,
		logger:  logger,
	}
}

type accountRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Lang     string `json:"lang"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (r accountRequest) birthday() (*time.Time, error) {
	if r.Birthday == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", r.Birthday)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func accountResponse(a model.Account) fiber.Map {
	roles := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		roles = append(roles, role.Name)
	}

	resp := fiber.Map{
		"id":       a.ID,
		"name":     a.Name,
		"lastname": a.LastName,
		"email":    a.Email,
		"status":   a.Status,
		"lang":     a.Lang,
		"phone":    a.Phone,
		"roles":    roles,
	}
	if a.Birthday != nil {
		resp["birthday"] = a.Birthday.Format("2006-01-02")
	}
	return resp
}

// List returns all accounts.
func (h *Account) List(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, accountResponse(a))
	}

	return c.JSON(resp)
}

// Get returns a single account with roles.
func (h *Account) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	account, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(accountResponse(account))
}

// Create registers an account on behalf of the authenticated admin.
func (h *Account) Create(c *fiber.Ctx) error {
	var body accountRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	birthday, err := body.birthday()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid birthday, expected YYYY-MM-DD")
	}

	actorID, _ := middleware.AccountID(c)

	account, err := h.service.Create(c.UserContext(), actorID, service.CreateAccountParams{
		Name:     body.Name,
		LastName: body.LastName,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Birthday: birthday,
		Lang:     body.Lang,
		Role:     body.Role,
		Status:   model.AccountStatus(body.Status),
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(accountResponse(account))
}

// Update edits an existing account.
func (h *Account) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	var body accountRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	birthday, err := body.birthday()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid birthday, expected YYYY-MM-DD")
	}

	actorID, _ := middleware.AccountID(c)

	account, err := h.service.Update(c.UserContext(), actorID, service.UpdateAccountParams{
		ID:       id,
		Name:     body.Name,
		LastName: body.LastName,
		Email:    body.Email,
		Phone:    body.Phone,
		Birthday: birthday,
		Lang:     body.Lang,
		Role:     body.Role,
		Status:   model.AccountStatus(body.Status),
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(accountResponse(account))
}

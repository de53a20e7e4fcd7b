package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dentix/clinic-server/internal/model"
)

// handleError maps service errors onto HTTP responses. Validation
// detail goes back to the caller; configuration faults stay generic.
func handleError(c *fiber.Ctx, err error) error {
	var vf *model.ValidationFailure
	if errors.As(err, &vf) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success":   false,
			"validator": true,
			"message":   vf.Fields,
		})
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, model.ErrTokenConsumed):
		return fiber.NewError(fiber.StatusNotFound, "confirmation token is invalid or already used")
	case errors.Is(err, model.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrAccountNotActive):
		return fiber.NewError(fiber.StatusForbidden, "account is not active")
	case errors.Is(err, model.ErrDuplicateEmail):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success":   false,
			"validator": true,
			"message":   map[string][]string{"email": {"The email has already been taken."}},
		})
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}

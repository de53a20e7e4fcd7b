package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
)

// RoleChecker reports whether an account holds a named role.
type RoleChecker interface {
	HasRole(ctx context.Context, accountID uuid.UUID, name string) (bool, error)
}

// RequireRole gates a route group behind a role. It must run after
// Authenticate, which puts the account id into the request locals.
type RequireRole struct {
	roles  RoleChecker
	logger *logger.Logger
}

// NewRequireRole creates a new RequireRole middleware.
func NewRequireRole(roles RoleChecker, logger *logger.Logger) *RequireRole {
	return &RequireRole{
		roles:  roles,
		logger: logger,
	}
}

// Handle returns a handler that rejects accounts lacking the role.
func (m *RequireRole) Handle(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, ok := AccountID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		has, err := m.roles.HasRole(c.UserContext(), accountID, role)
		if err != nil {
			m.logger.Error("RequireRole middleware: role check failed",
				"account_id", accountID,
				"role", role,
				"error", err.Error())
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if !has {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}

		return c.Next()
	}
}

package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
)

const accountIDKey = "account_id"

// TokenParser extracts the account identity from an access token.
type TokenParser interface {
	GetAccountID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates the bearer token on incoming requests and
// stores the authenticated account id in the request locals.
type Authenticate struct {
	tokens TokenParser
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware.
func NewAuthenticate(tokens TokenParser, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokens: tokens,
		logger: logger,
	}
}

// Handle rejects requests without a valid bearer token.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	accountID, err := m.tokens.GetAccountID(c.UserContext(), token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(accountIDKey, accountID)

	return c.Next()
}

// AccountID returns the authenticated account id stored by Authenticate.
func AccountID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(accountIDKey).(uuid.UUID)
	return id, ok
}

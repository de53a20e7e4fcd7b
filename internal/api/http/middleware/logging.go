package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dentix/clinic-server/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	duration := time.Since(start)

	status := c.Response().StatusCode()
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	l.logger.Info("HTTP request completed",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", duration.Milliseconds())

	if err != nil {
		l.logger.Error("HTTP request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error())
	}

	return err
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/service"
)

// SpecialistService defines practitioner management operations.
type SpecialistService interface {
	Create(ctx context.Context, params service.SpecialistParams) (model.Specialist, error)
	Update(ctx context.Context, id uuid.UUID, params service.SpecialistParams) (model.Specialist, error)
	List(ctx context.Context) ([]model.Specialist, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// Specialist handles practitioner management endpoints.
type Specialist struct {
	service SpecialistService
	logger  *logger.Logger
}

// NewSpecialist creates a new Specialist handler.
func NewSpecialist(service SpecialistService, logger *logger.Logger) *Specialist {
	return &Specialist{
		service: service,
		logger:  logger,
	}
}

type specialistRequest struct {
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

func (r specialistRequest) params() service.SpecialistParams {
	return service.SpecialistParams{
		Name:      r.Name,
		LastName:  r.LastName,
		DNI:       r.DNI,
		Email:     r.Email,
		Phone:     r.Phone,
		Specialty: r.Specialty,
	}
}

func specialistResponse(s model.Specialist) fiber.Map {
	return fiber.Map{
		"id":        s.ID,
		"name":      s.Name,
		"lastname":  s.LastName,
		"dni":       s.DNI,
		"email":     s.Email,
		"phone":     s.Phone,
		"active":    s.Active,
		"specialty": s.SpecialtyName,
	}
}

// List returns all specialists.
func (h *Specialist) List(c *fiber.Ctx) error {
	specialists, err := h.service.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}

	resp := make([]fiber.Map, 0, len(specialists))
	for _, s := range specialists {
		resp = append(resp, specialistResponse(s))
	}

	return c.JSON(resp)
}

// Create registers a new specialist.
func (h *Specialist) Create(c *fiber.Ctx) error {
	var body specialistRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	specialist, err := h.service.Create(c.UserContext(), body.params())
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(specialistResponse(specialist))
}

// Update edits a specialist record.
func (h *Specialist) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid specialist id")
	}

	var body specialistRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	specialist, err := h.service.Update(c.UserContext(), id, body.params())
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(specialistResponse(specialist))
}

// Deactivate marks a specialist inactive.
func (h *Specialist) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid specialist id")
	}

	if err := h.service.Deactivate(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

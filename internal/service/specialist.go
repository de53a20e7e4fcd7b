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

// Specialist manages clinic practitioner records.
type Specialist struct {
	specialistStore model.SpecialistStore
	specialtyStore  model.SpecialtyStore
	logger          *logger.Logger
}

func NewSpecialist(
	specialistStore model.SpecialistStore,
	specialtyStore model.SpecialtyStore,
	logger *logger.Logger,
) *Specialist {
	return &Specialist{
		specialistStore: specialistStore,
		specialtyStore:  specialtyStore,
		logger:          logger,
	}
}

// SpecialistParams are the submitted fields for a specialist record.
type SpecialistParams struct {
	Name      string
	LastName  string
	DNI       string
	Email     string
	Phone     string
	Specialty string
}

// Create registers a specialist under an existing specialty.
func (s *Specialist) Create(ctx context.Context, params SpecialistParams) (model.Specialist, error) {
	specialty, err := s.specialtyStore.GetByName(ctx, params.Specialty)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Specialist{}, fmt.Errorf("unknown specialty %q: %w", params.Specialty, model.ErrNotFound)
		}
		return model.Specialist{}, fmt.Errorf("failed to get specialty: %w", err)
	}

	now := time.Now()
	specialist := model.Specialist{
		ID:          uuid.New(),
		Name:        params.Name,
		LastName:    params.LastName,
		DNI:         params.DNI,
		Email:       params.Email,
		Phone:       params.Phone,
		Active:      true,
		SpecialtyID: specialty.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	specialist, err = s.specialistStore.Create(ctx, specialist)
	if err != nil {
		return model.Specialist{}, fmt.Errorf("failed to create specialist: %w", err)
	}

	s.logger.Info("Specialist service: specialist created",
		"specialist_id", specialist.ID,
		"specialty", specialty.Name)

	return specialist, nil
}

// Update edits an existing specialist.
func (s *Specialist) Update(ctx context.Context, id uuid.UUID, params SpecialistParams) (model.Specialist, error) {
	specialist, err := s.specialistStore.GetByID(ctx, id)
	if err != nil {
		return model.Specialist{}, err
	}

	if params.Specialty != "" && params.Specialty != specialist.SpecialtyName {
		specialty, err := s.specialtyStore.GetByName(ctx, params.Specialty)
		if err != nil {
			return model.Specialist{}, fmt.Errorf("failed to get specialty: %w", err)
		}
		specialist.SpecialtyID = specialty.ID
	}

	specialist.Name = params.Name
	specialist.LastName = params.LastName
	specialist.DNI = params.DNI
	specialist.Email = params.Email
	specialist.Phone = params.Phone
	specialist.UpdatedAt = time.Now()

	return s.specialistStore.Update(ctx, specialist)
}

// List returns all specialists with their specialty names.
func (s *Specialist) List(ctx context.Context) ([]model.Specialist, error) {
	return s.specialistStore.List(ctx)
}

// Deactivate marks a specialist inactive without removing the record.
func (s *Specialist) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.specialistStore.SetActive(ctx, id, false)
}

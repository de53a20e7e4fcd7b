package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SpecialistStore defines persistence operations for specialists.
type SpecialistStore interface {
	Create(ctx context.Context, specialist Specialist) (Specialist, error)
	GetByID(ctx context.Context, id uuid.UUID) (Specialist, error)
	List(ctx context.Context) ([]Specialist, error)
	Update(ctx context.Context, specialist Specialist) (Specialist, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// SpecialtyStore defines lookup operations for dental specialties.
type SpecialtyStore interface {
	GetByName(ctx context.Context, name string) (Specialty, error)
	List(ctx context.Context) ([]Specialty, error)
}

// Specialist is a clinic practitioner tied to a specialty.
type Specialist struct {
	ID            uuid.UUID
	Name          string
	LastName      string
	DNI           string
	Email         string
	Phone         string
	Active        bool
	SpecialtyID   uuid.UUID
	SpecialtyName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Specialty is a dental discipline (orthodontics, endodontics, ...).
type Specialty struct {
	ID   uuid.UUID
	Name string
}

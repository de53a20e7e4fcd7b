package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PatientStore defines persistence operations for patients.
type PatientStore interface {
	Create(ctx context.Context, patient Patient) (Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (Patient, error)
	List(ctx context.Context) ([]Patient, error)
}

// Patient is a clinic patient record.
type Patient struct {
	ID        uuid.UUID
	Name      string
	LastName  string
	DNI       string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

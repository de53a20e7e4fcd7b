package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OdontogramStore defines persistence operations for odontograms.
type OdontogramStore interface {
	Create(ctx context.Context, odontogram Odontogram) (Odontogram, error)
	GetByID(ctx context.Context, id uuid.UUID) (Odontogram, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Odontogram, error)
	AddToothRecord(ctx context.Context, record ToothRecord) (ToothRecord, error)
	ListToothRecords(ctx context.Context, odontogramID uuid.UUID) ([]ToothRecord, error)
	AddAttachment(ctx context.Context, attachment XrayAttachment) (XrayAttachment, error)
	ListAttachments(ctx context.Context, odontogramID uuid.UUID) ([]XrayAttachment, error)
	GetAttachment(ctx context.Context, id uuid.UUID) (XrayAttachment, error)
}

// Odontogram is a dental chart belonging to a patient.
type Odontogram struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToothRecord notes the condition of a single tooth surface on a chart.
// Tooth numbers follow FDI notation (11-48).
type ToothRecord struct {
	ID           uuid.UUID
	OdontogramID uuid.UUID
	Tooth        int
	Surface      string
	Condition    string
	Note         string
	CreatedAt    time.Time
}

// XrayAttachment references an X-ray image kept in object storage.
type XrayAttachment struct {
	ID           uuid.UUID
	OdontogramID uuid.UUID
	FileName     string
	ContentType  string
	StorageKey   string
	CreatedAt    time.Time
}

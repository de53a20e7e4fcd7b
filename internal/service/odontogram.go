package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// Known tooth conditions for chart records.
var toothConditions = map[string]bool{
	"healthy":    true,
	"caries":     true,
	"filling":    true,
	"crown":      true,
	"extraction": true,
	"implant":    true,
	"missing":    true,
}

// Odontogram manages patients, their dental charts and X-ray
// attachments. Image blobs live in object storage; the database keeps
// only references.
type Odontogram struct {
	patientStore    model.PatientStore
	odontogramStore model.OdontogramStore
	storage         model.Storage
	logger          *logger.Logger
}

func NewOdontogram(
	patientStore model.PatientStore,
	odontogramStore model.OdontogramStore,
	storage model.Storage,
	logger *logger.Logger,
) *Odontogram {
	return &Odontogram{
		patientStore:    patientStore,
		odontogramStore: odontogramStore,
		storage:         storage,
		logger:          logger,
	}
}

// CreatePatient registers a patient record.
func (s *Odontogram) CreatePatient(ctx context.Context, patient model.Patient) (model.Patient, error) {
	now := time.Now()
	patient.ID = uuid.New()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	return s.patientStore.Create(ctx, patient)
}

// GetPatient returns a patient by ID.
func (s *Odontogram) GetPatient(ctx context.Context, id uuid.UUID) (model.Patient, error) {
	return s.patientStore.GetByID(ctx, id)
}

// ListPatients returns all patients.
func (s *Odontogram) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return s.patientStore.List(ctx)
}

// CreateChart opens a new odontogram for a patient.
func (s *Odontogram) CreateChart(ctx context.Context, patientID uuid.UUID) (model.Odontogram, error) {
	if _, err := s.patientStore.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Odontogram{}, model.ErrNotFound
		}
		return model.Odontogram{}, fmt.Errorf("failed to get patient: %w", err)
	}

	now := time.Now()
	chart := model.Odontogram{
		ID:        uuid.New(),
		PatientID: patientID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	chart, err := s.odontogramStore.Create(ctx, chart)
	if err != nil {
		return model.Odontogram{}, fmt.Errorf("failed to create odontogram: %w", err)
	}

	s.logger.Info("Odontogram service: chart created",
		"odontogram_id", chart.ID,
		"patient_id", patientID)

	return chart, nil
}

// ListCharts returns all odontograms for a patient.
func (s *Odontogram) ListCharts(ctx context.Context, patientID uuid.UUID) ([]model.Odontogram, error) {
	return s.odontogramStore.ListByPatient(ctx, patientID)
}

// RecordTooth notes a tooth condition on a chart. Tooth numbers follow
// FDI notation.
func (s *Odontogram) RecordTooth(ctx context.Context, odontogramID uuid.UUID, tooth int, surface, condition, note string) (model.ToothRecord, error) {
	if tooth < 11 || tooth > 48 {
		return model.ToothRecord{}, fmt.Errorf("tooth %d outside FDI range", tooth)
	}
	if !toothConditions[condition] {
		return model.ToothRecord{}, fmt.Errorf("unknown tooth condition %q", condition)
	}

	if _, err := s.odontogramStore.GetByID(ctx, odontogramID); err != nil {
		return model.ToothRecord{}, err
	}

	record := model.ToothRecord{
		ID:           uuid.New(),
		OdontogramID: odontogramID,
		Tooth:        tooth,
		Surface:      surface,
		Condition:    condition,
		Note:         note,
		CreatedAt:    time.Now(),
	}

	return s.odontogramStore.AddToothRecord(ctx, record)
}

// ListTeeth returns the tooth records of a chart.
func (s *Odontogram) ListTeeth(ctx context.Context, odontogramID uuid.UUID) ([]model.ToothRecord, error) {
	return s.odontogramStore.ListToothRecords(ctx, odontogramID)
}

// AttachXray uploads the image to object storage first, then records
// the reference: a failed upload leaves no dangling database row.
func (s *Odontogram) AttachXray(ctx context.Context, odontogramID uuid.UUID, fileName, contentType string, data io.Reader) (model.XrayAttachment, error) {
	if _, err := s.odontogramStore.GetByID(ctx, odontogramID); err != nil {
		return model.XrayAttachment{}, err
	}

	attachment := model.XrayAttachment{
		ID:           uuid.New(),
		OdontogramID: odontogramID,
		FileName:     fileName,
		ContentType:  contentType,
		CreatedAt:    time.Now(),
	}
	attachment.StorageKey = fmt.Sprintf("odontograms/%s/%s", odontogramID, attachment.ID)

	if err := s.storage.Upload(ctx, attachment.StorageKey, data); err != nil {
		return model.XrayAttachment{}, fmt.Errorf("failed to upload x-ray: %w", err)
	}

	saved, err := s.odontogramStore.AddAttachment(ctx, attachment)
	if err != nil {
		// Roll the blob back so storage does not accumulate orphans.
		if delErr := s.storage.Delete(ctx, attachment.StorageKey); delErr != nil {
			s.logger.Warn("Odontogram service: failed to delete orphaned x-ray blob",
				"storage_key", attachment.StorageKey,
				"error", delErr.Error())
		}
		return model.XrayAttachment{}, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.logger.Info("Odontogram service: x-ray attached",
		"odontogram_id", odontogramID,
		"attachment_id", saved.ID)

	return saved, nil
}

// OpenXray streams an attachment's image data.
func (s *Odontogram) OpenXray(ctx context.Context, attachmentID uuid.UUID) (model.XrayAttachment, io.ReadCloser, error) {
	attachment, err := s.odontogramStore.GetAttachment(ctx, attachmentID)
	if err != nil {
		return model.XrayAttachment{}, nil, err
	}

	reader, err := s.storage.Download(ctx, attachment.StorageKey)
	if err != nil {
		return model.XrayAttachment{}, nil, fmt.Errorf("failed to download x-ray: %w", err)
	}

	return attachment, reader, nil
}

// ListXrays returns the attachments recorded for a chart.
func (s *Odontogram) ListXrays(ctx context.Context, odontogramID uuid.UUID) ([]model.XrayAttachment, error) {
	return s.odontogramStore.ListAttachments(ctx, odontogramID)
}

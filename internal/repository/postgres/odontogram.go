package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.OdontogramStore = (*OdontogramRepository)(nil)

type OdontogramRepository struct {
	db *Connection
}

func NewOdontogramRepository(db *Connection) *OdontogramRepository {
	return &OdontogramRepository{
		db: db,
	}
}

func (r *OdontogramRepository) Create(ctx context.Context, odontogram model.Odontogram) (model.Odontogram, error) {
	query := `INSERT INTO odontograms (id, patient_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, patient_id, created_at, updated_at`

	var saved model.Odontogram
	err := r.db.QueryRow(ctx, query,
		odontogram.ID, odontogram.PatientID, odontogram.CreatedAt, odontogram.UpdatedAt,
	).Scan(&saved.ID, &saved.PatientID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return model.Odontogram{}, fmt.Errorf("failed to create odontogram: %w", err)
	}

	return saved, nil
}

func (r *OdontogramRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Odontogram, error) {
	query := `SELECT id, patient_id, created_at, updated_at FROM odontograms WHERE id = $1`

	var o model.Odontogram
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.PatientID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Odontogram{}, model.ErrNotFound
		}
		return model.Odontogram{}, fmt.Errorf("failed to get odontogram: %w", err)
	}

	return o, nil
}

func (r *OdontogramRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Odontogram, error) {
	query := `SELECT id, patient_id, created_at, updated_at
			  FROM odontograms WHERE patient_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list odontograms: %w", err)
	}
	defer rows.Close()

	var odontograms []model.Odontogram
	for rows.Next() {
		var o model.Odontogram
		if err := rows.Scan(&o.ID, &o.PatientID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan odontogram: %w", err)
		}
		odontograms = append(odontograms, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate odontograms: %w", err)
	}

	return odontograms, nil
}

func (r *OdontogramRepository) AddToothRecord(ctx context.Context, record model.ToothRecord) (model.ToothRecord, error) {
	query := `INSERT INTO odontogram_teeth (id, odontogram_id, tooth, surface, condition, note, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, odontogram_id, tooth, surface, condition, note, created_at`

	var saved model.ToothRecord
	err := r.db.QueryRow(ctx, query,
		record.ID, record.OdontogramID, record.Tooth, record.Surface,
		record.Condition, record.Note, record.CreatedAt,
	).Scan(
		&saved.ID, &saved.OdontogramID, &saved.Tooth, &saved.Surface,
		&saved.Condition, &saved.Note, &saved.CreatedAt,
	)
	if err != nil {
		return model.ToothRecord{}, fmt.Errorf("failed to add tooth record: %w", err)
	}

	return saved, nil
}

func (r *OdontogramRepository) ListToothRecords(ctx context.Context, odontogramID uuid.UUID) ([]model.ToothRecord, error) {
	query := `SELECT id, odontogram_id, tooth, surface, condition, note, created_at
			  FROM odontogram_teeth WHERE odontogram_id = $1 ORDER BY tooth, created_at`

	rows, err := r.db.Query(ctx, query, odontogramID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tooth records: %w", err)
	}
	defer rows.Close()

	var records []model.ToothRecord
	for rows.Next() {
		var t model.ToothRecord
		if err := rows.Scan(&t.ID, &t.OdontogramID, &t.Tooth, &t.Surface, &t.Condition, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tooth record: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tooth records: %w", err)
	}

	return records, nil
}

func (r *OdontogramRepository) AddAttachment(ctx context.Context, attachment model.XrayAttachment) (model.XrayAttachment, error) {
	query := `INSERT INTO odontogram_xrays (id, odontogram_id, file_name, content_type, storage_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, odontogram_id, file_name, content_type, storage_key, created_at`

	var saved model.XrayAttachment
	err := r.db.QueryRow(ctx, query,
		attachment.ID, attachment.OdontogramID, attachment.FileName,
		attachment.ContentType, attachment.StorageKey, attachment.CreatedAt,
	).Scan(
		&saved.ID, &saved.OdontogramID, &saved.FileName,
		&saved.ContentType, &saved.StorageKey, &saved.CreatedAt,
	)
	if err != nil {
		return model.XrayAttachment{}, fmt.Errorf("failed to add attachment: %w", err)
	}

	return saved, nil
}

func (r *OdontogramRepository) ListAttachments(ctx context.Context, odontogramID uuid.UUID) ([]model.XrayAttachment, error) {
	query := `SELECT id, odontogram_id, file_name, content_type, storage_key, created_at
			  FROM odontogram_xrays WHERE odontogram_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, odontogramID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []model.XrayAttachment
	for rows.Next() {
		var a model.XrayAttachment
		if err := rows.Scan(&a.ID, &a.OdontogramID, &a.FileName, &a.ContentType, &a.StorageKey, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}

	return attachments, nil
}

func (r *OdontogramRepository) GetAttachment(ctx context.Context, id uuid.UUID) (model.XrayAttachment, error) {
	query := `SELECT id, odontogram_id, file_name, content_type, storage_key, created_at
			  FROM odontogram_xrays WHERE id = $1`

	var a model.XrayAttachment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.OdontogramID, &a.FileName, &a.ContentType, &a.StorageKey, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.XrayAttachment{}, model.ErrNotFound
		}
		return model.XrayAttachment{}, fmt.Errorf("failed to get attachment: %w", err)
	}

	return a, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.PatientStore = (*PatientRepository)(nil)

type PatientRepository struct {
	db *Connection
}

func NewPatientRepository(db *Connection) *PatientRepository {
	return &PatientRepository{
		db: db,
	}
}

func (r *PatientRepository) Create(ctx context.Context, patient model.Patient) (model.Patient, error) {
	query := `INSERT INTO patients (id, name, last_name, dni, email, phone, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, name, last_name, dni, email, phone, created_at, updated_at`

	var saved model.Patient
	err := r.db.QueryRow(ctx, query,
		patient.ID, patient.Name, patient.LastName, patient.DNI,
		patient.Email, patient.Phone, patient.CreatedAt, patient.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.LastName, &saved.DNI,
		&saved.Email, &saved.Phone, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Patient{}, fmt.Errorf("failed to create patient: %w", err)
	}

	return saved, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Patient, error) {
	query := `SELECT id, name, last_name, dni, email, phone, created_at, updated_at
			  FROM patients WHERE id = $1`

	var p model.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.LastName, &p.DNI, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Patient{}, model.ErrNotFound
		}
		return model.Patient{}, fmt.Errorf("failed to get patient: %w", err)
	}

	return p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	query := `SELECT id, name, last_name, dni, email, phone, created_at, updated_at
			  FROM patients ORDER BY last_name, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(
			&p.ID, &p.Name, &p.LastName, &p.DNI, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentix/clinic-server/internal/model"
)

var (
	_ model.SpecialistStore = (*SpecialistRepository)(nil)
	_ model.SpecialtyStore  = (*SpecialtyRepository)(nil)
)

const specialistColumns = `s.id, s.name, s.last_name, s.dni, s.email, s.phone, s.active,
			  s.specialty_id, sp.name, s.created_at, s.updated_at`

type SpecialistRepository struct {
	db *Connection
}

func NewSpecialistRepository(db *Connection) *SpecialistRepository {
	return &SpecialistRepository{
		db: db,
	}
}

func (r *SpecialistRepository) Create(ctx context.Context, specialist model.Specialist) (model.Specialist, error) {
	query := `INSERT INTO specialists (id, name, last_name, dni, email, phone, active, specialty_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		specialist.ID, specialist.Name, specialist.LastName, specialist.DNI,
		specialist.Email, specialist.Phone, specialist.Active, specialist.SpecialtyID,
		specialist.CreatedAt, specialist.UpdatedAt,
	)
	if err != nil {
		return model.Specialist{}, fmt.Errorf("failed to create specialist: %w", err)
	}

	return r.GetByID(ctx, specialist.ID)
}

func (r *SpecialistRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Specialist, error) {
	query := `SELECT ` + specialistColumns + `
			  FROM specialists s JOIN specialties sp ON sp.id = s.specialty_id
			  WHERE s.id = $1`

	var s model.Specialist
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.LastName, &s.DNI, &s.Email, &s.Phone, &s.Active,
		&s.SpecialtyID, &s.SpecialtyName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Specialist{}, model.ErrNotFound
		}
		return model.Specialist{}, fmt.Errorf("failed to get specialist: %w", err)
	}

	return s, nil
}

func (r *SpecialistRepository) List(ctx context.Context) ([]model.Specialist, error) {
	query := `SELECT ` + specialistColumns + `
			  FROM specialists s JOIN specialties sp ON sp.id = s.specialty_id
			  ORDER BY s.last_name, s.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialists: %w", err)
	}
	defer rows.Close()

	var specialists []model.Specialist
	for rows.Next() {
		var s model.Specialist
		if err := rows.Scan(
			&s.ID, &s.Name, &s.LastName, &s.DNI, &s.Email, &s.Phone, &s.Active,
			&s.SpecialtyID, &s.SpecialtyName, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan specialist: %w", err)
		}
		specialists = append(specialists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate specialists: %w", err)
	}

	return specialists, nil
}

func (r *SpecialistRepository) Update(ctx context.Context, specialist model.Specialist) (model.Specialist, error) {
	query := `UPDATE specialists
			  SET name = $2, last_name = $3, dni = $4, email = $5, phone = $6, specialty_id = $7, updated_at = $8
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		specialist.ID, specialist.Name, specialist.LastName, specialist.DNI,
		specialist.Email, specialist.Phone, specialist.SpecialtyID, specialist.UpdatedAt,
	)
	if err != nil {
		return model.Specialist{}, fmt.Errorf("failed to update specialist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Specialist{}, model.ErrNotFound
	}

	return r.GetByID(ctx, specialist.ID)
}

func (r *SpecialistRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE specialists SET active = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("failed to set specialist active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

type SpecialtyRepository struct {
	db *Connection
}

func NewSpecialtyRepository(db *Connection) *SpecialtyRepository {
	return &SpecialtyRepository{
		db: db,
	}
}

func (r *SpecialtyRepository) GetByName(ctx context.Context, name string) (model.Specialty, error) {
	var sp model.Specialty
	err := r.db.QueryRow(ctx, `SELECT id, name FROM specialties WHERE name = $1`, name).Scan(&sp.ID, &sp.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Specialty{}, model.ErrNotFound
		}
		return model.Specialty{}, fmt.Errorf("failed to get specialty by name: %w", err)
	}

	return sp, nil
}

func (r *SpecialtyRepository) List(ctx context.Context) ([]model.Specialty, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM specialties ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	defer rows.Close()

	var specialties []model.Specialty
	for rows.Next() {
		var sp model.Specialty
		if err := rows.Scan(&sp.ID, &sp.Name); err != nil {
			return nil, fmt.Errorf("failed to scan specialty: %w", err)
		}
		specialties = append(specialties, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate specialties: %w", err)
	}

	return specialties, nil
}

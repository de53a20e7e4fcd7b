package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.RoleStore = (*RoleRepository)(nil)

type RoleRepository struct {
	db *Connection
}

func NewRoleRepository(db *Connection) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	query := `SELECT id, name FROM roles WHERE name = $1`

	err := r.db.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Role{}, model.ErrNotFound
		}
		return model.Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}

	return role, nil
}

func (r *RoleRepository) Assign(ctx context.Context, accountID, roleID uuid.UUID) error {
	query := `INSERT INTO account_roles (account_id, role_id) VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`

	_, err := r.db.Exec(ctx, query, accountID, roleID)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return nil
}

func (r *RoleRepository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.Role, error) {
	query := `SELECT r.id, r.name FROM roles r
			  JOIN account_roles ar ON ar.role_id = r.id
			  WHERE ar.account_id = $1`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles for account: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}

	return roles, nil
}

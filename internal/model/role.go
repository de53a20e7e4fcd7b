package model

import (
	"context"

	"github.com/google/uuid"
)

// RoleUser is the default role assigned on self-registration.
const RoleUser = "user"

// RoleAdmin gates the administrative API surface.
const RoleAdmin = "admin"

// RoleStore defines persistence operations for roles.
type RoleStore interface {
	GetByName(ctx context.Context, name string) (Role, error)
	Assign(ctx context.Context, accountID, roleID uuid.UUID) error
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]Role, error)
}

// Role is a named permission group assigned to accounts.
type Role struct {
	ID   uuid.UUID
	Name string
}

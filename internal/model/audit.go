package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actor categories.
const (
	ActorUser   = "user"
	ActorSystem = "system"
	ActorAdmin  = "admin"
)

// AuditStore persists immutable audit entries. Writes are best-effort
// from the caller's perspective: a failed write must never roll back or
// fail the operation being audited.
type AuditStore interface {
	Record(ctx context.Context, entry AuditEntry) error
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]AuditEntry, error)
}

// AuditEntry is an immutable record of an account-affecting action.
type AuditEntry struct {
	ID        uuid.UUID
	Actor     string
	Message   string
	AccountID uuid.UUID
	CreatedAt time.Time
}

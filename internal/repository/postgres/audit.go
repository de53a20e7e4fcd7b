package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.AuditStore = (*AuditRepository)(nil)

type AuditRepository struct {
	db *Connection
}

func NewAuditRepository(db *Connection) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

func (r *AuditRepository) Record(ctx context.Context, entry model.AuditEntry) error {
	query := `INSERT INTO audit_log (id, actor, message, account_id, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.Actor, entry.Message, entry.AccountID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepository) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]model.AuditEntry, error) {
	query := `SELECT id, actor, message, account_id, created_at
			  FROM audit_log WHERE account_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Message, &e.AccountID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}

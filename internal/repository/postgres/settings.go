package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.SettingsStore = (*SettingsRepository)(nil)

type SettingsRepository struct {
	db *Connection
}

func NewSettingsRepository(db *Connection) *SettingsRepository {
	return &SettingsRepository{
		db: db,
	}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}

	return value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	return nil
}

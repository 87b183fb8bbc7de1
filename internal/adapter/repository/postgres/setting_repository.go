package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepository implements setting.Repository
type SettingRepository struct {
	db *pgxpool.Pool
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *pgxpool.Pool) setting.Repository {
	return &SettingRepository{db: db}
}

// Get implements setting.Repository.Get
func (r *SettingRepository) Get(ctx context.Context, key string) (*setting.Setting, error) {
	var s setting.Setting
	err := r.db.QueryRow(ctx,
		"SELECT key, value, updated_at FROM settings WHERE key = $1",
		key).Scan(&s.Key, &s.Value, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, setting.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to find setting: %w", err)
	}
	return &s, nil
}

// List implements setting.Repository.List
func (r *SettingRepository) List(ctx context.Context) ([]*setting.Setting, error) {
	rows, err := r.db.Query(ctx,
		"SELECT key, value, updated_at FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]*setting.Setting, 0)
	for rows.Next() {
		var s setting.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}

// Put implements setting.Repository.Put
func (r *SettingRepository) Put(ctx context.Context, s *setting.Setting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3`,
		s.Key, s.Value, s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	return nil
}

// Delete implements setting.Repository.Delete
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM settings WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return setting.ErrSettingNotFound
	}
	return nil
}

package setting

import (
	"context"
	"errors"
)

var ErrSettingNotFound = errors.New("setting not found")

// Repository defines the storage operations for settings
type Repository interface {
	// Get returns a setting by key
	Get(ctx context.Context, key string) (*Setting, error)

	// List returns all settings ordered by key
	List(ctx context.Context) ([]*Setting, error)

	// Put creates or replaces a setting
	Put(ctx context.Context, s *Setting) error

	// Delete removes a setting
	Delete(ctx context.Context, key string) error
}

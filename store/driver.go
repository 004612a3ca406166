package store

import (
	"context"
)

// Driver is the persistence backend of Store. Implementations live in store/db.
type Driver interface {
	// Migrate creates the schema when missing.
	Migrate(ctx context.Context) error

	// GetSetting returns the setting with key, or nil when it does not exist.
	GetSetting(ctx context.Context, key string) (*Setting, error)
	UpsertSetting(ctx context.Context, upsert *Setting) (*Setting, error)
	// DeleteSetting removes key. Deleting a missing key is not an error.
	DeleteSetting(ctx context.Context, key string) error

	Close() error
}

package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/hrygo/cutverse/internal/profile"
	"github.com/hrygo/cutverse/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a PostgreSQL connection pool for profile.DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil || profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	// Validate the DSN up front; sql.Open never dials.
	connector, err := pq.NewConnector(profile.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "invalid postgres dsn")
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	return &DB{db: db, profile: profile}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS setting (
	key        TEXT NOT NULL PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
);`

func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			slog.Error("postgres: migration failed", "code", pqErr.Code, "detail", pqErr.Detail)
		}
		return errors.Wrap(err, "failed to migrate postgres schema")
	}
	return nil
}

func (d *DB) GetSetting(ctx context.Context, key string) (*store.Setting, error) {
	setting := &store.Setting{}
	err := d.db.QueryRowContext(ctx,
		`SELECT key, value, updated_ts FROM setting WHERE key = $1`, key,
	).Scan(&setting.Key, &setting.Value, &setting.UpdatedTs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (d *DB) UpsertSetting(ctx context.Context, upsert *store.Setting) (*store.Setting, error) {
	stmt := `
		INSERT INTO setting (key, value, updated_ts) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_ts = EXCLUDED.updated_ts`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Key, upsert.Value, upsert.UpdatedTs); err != nil {
		return nil, err
	}
	return upsert, nil
}

func (d *DB) DeleteSetting(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM setting WHERE key = $1`, key)
	return err
}

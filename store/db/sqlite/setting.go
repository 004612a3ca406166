package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hrygo/cutverse/store"
)

func (d *DB) GetSetting(ctx context.Context, key string) (*store.Setting, error) {
	setting := &store.Setting{}
	err := d.db.QueryRowContext(ctx,
		"SELECT `key`, `value`, `updated_ts` FROM `setting` WHERE `key` = ?", key,
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
	stmt := "INSERT INTO `setting` (`key`, `value`, `updated_ts`) VALUES (?, ?, ?) " +
		"ON CONFLICT(`key`) DO UPDATE SET `value` = EXCLUDED.`value`, `updated_ts` = EXCLUDED.`updated_ts`"
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Key, upsert.Value, upsert.UpdatedTs); err != nil {
		return nil, err
	}
	return upsert, nil
}

func (d *DB) DeleteSetting(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `setting` WHERE `key` = ?", key)
	return err
}

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDriver struct {
	mu       sync.Mutex
	settings map[string]*Setting
	reads    int
	failNext error
}

func newMemoryDriver() *memoryDriver {
	return &memoryDriver{settings: map[string]*Setting{}}
}

func (d *memoryDriver) Migrate(context.Context) error { return nil }

func (d *memoryDriver) GetSetting(_ context.Context, key string) (*Setting, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reads++
	if err := d.failNext; err != nil {
		d.failNext = nil
		return nil, err
	}
	s, ok := d.settings[key]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (d *memoryDriver) UpsertSetting(_ context.Context, upsert *Setting) (*Setting, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failNext; err != nil {
		d.failNext = nil
		return nil, err
	}
	cp := *upsert
	d.settings[upsert.Key] = &cp
	return upsert, nil
}

func (d *memoryDriver) DeleteSetting(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.settings, key)
	return nil
}

func (d *memoryDriver) Close() error { return nil }

func TestStore_SettingsAreCached(t *testing.T) {
	ctx := context.Background()
	driver := newMemoryDriver()
	s := New(driver, nil)

	_, ok, err := s.GetSetting(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, _, _ = s.GetSetting(ctx, "a")
	assert.Equal(t, 1, driver.reads, "misses are cached too")

	require.NoError(t, s.SetSetting(ctx, "a", "1"))
	v, ok, err := s.GetSetting(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, driver.reads)

	require.NoError(t, s.DeleteSetting(ctx, "a"))
	_, ok, err = s.GetSetting(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, driver.reads)
}

func TestStore_DriverErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	driver := newMemoryDriver()
	s := New(driver, nil)

	driver.failNext = errors.New("disk full")
	err := s.SetSetting(ctx, "a", "1")
	assert.ErrorContains(t, err, "failed to save setting a: disk full")

	driver.failNext = errors.New("locked")
	_, _, err = s.GetSetting(ctx, "b")
	assert.ErrorContains(t, err, "locked")
}

func TestStore_APIKey(t *testing.T) {
	ctx := context.Background()
	s := New(newMemoryDriver(), nil)

	key, err := s.APIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, s.SetAPIKey(ctx, "  sk-abcdef123456 "))
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-abcdef123456", key)

	require.NoError(t, s.SetAPIKey(ctx, ""))
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "", MaskAPIKey(""))
	assert.Equal(t, "***", MaskAPIKey("abc"))
	assert.Equal(t, "********3456", MaskAPIKey("sk-abcdef123456"))
}

func TestStore_RecordVersion(t *testing.T) {
	ctx := context.Background()
	s := New(newMemoryDriver(), nil)

	prev, err := s.RecordVersion(ctx, "0.2.0")
	require.NoError(t, err)
	assert.Empty(t, prev)

	prev, err = s.RecordVersion(ctx, "0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", prev)

	v, _, err := s.GetSetting(ctx, SettingKeyAppVersion)
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", v)
}

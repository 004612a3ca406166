package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/cutverse/internal/version"
)

// Well-known setting keys.
const (
	SettingKeyAPIKey     = "openai_api_key"
	SettingKeyAppVersion = "app_version"
)

// Setting is one key-value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedTs int64
}

// GetSetting returns the value of key and whether it exists.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if cached, ok := s.settingCache.Get(key); ok {
		if cached == nil {
			return "", false, nil
		}
		return cached.Value, true, nil
	}

	setting, err := s.driver.GetSetting(ctx, key)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get setting %s", key)
	}
	s.settingCache.Add(key, setting)
	if setting == nil {
		return "", false, nil
	}
	return setting.Value, true, nil
}

// SetSetting stores value under key.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	setting, err := s.driver.UpsertSetting(ctx, &Setting{Key: key, Value: value, UpdatedTs: s.now().Unix()})
	if err != nil {
		s.settingCache.Remove(key)
		return errors.Wrapf(err, "failed to save setting %s", key)
	}
	s.settingCache.Add(key, setting)
	return nil
}

// DeleteSetting removes key.
func (s *Store) DeleteSetting(ctx context.Context, key string) error {
	defer s.settingCache.Remove(key)
	if err := s.driver.DeleteSetting(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to delete setting %s", key)
	}
	return nil
}

// APIKey returns the saved LLM API key, or "" when none is saved.
func (s *Store) APIKey(ctx context.Context) (string, error) {
	key, _, err := s.GetSetting(ctx, SettingKeyAPIKey)
	return key, err
}

// SetAPIKey saves the LLM API key. An empty key clears it.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.DeleteSetting(ctx, SettingKeyAPIKey)
	}
	return s.SetSetting(ctx, SettingKeyAPIKey, key)
}

// MaskAPIKey hides all but the last four characters of key.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

// RecordVersion stores current as the last running version. It returns the
// previously recorded version and logs a warning when current is older.
func (s *Store) RecordVersion(ctx context.Context, current string) (string, error) {
	previous, ok, err := s.GetSetting(ctx, SettingKeyAppVersion)
	if err != nil {
		return "", err
	}
	if ok && previous == current {
		return previous, nil
	}
	if ok && version.IsValid(previous) && version.IsValid(current) && version.IsVersionGreaterThan(previous, current) {
		slog.Warn("store: data was written by a newer version", "recorded", previous, "running", current)
	}
	if err := s.SetSetting(ctx, SettingKeyAppVersion, current); err != nil {
		return "", err
	}
	return previous, nil
}

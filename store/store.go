package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hrygo/cutverse/internal/profile"
)

// Cache settings for the read-through setting cache.
const (
	settingCacheSize = 128
	settingCacheTTL  = 10 * time.Minute
)

// Store is the key-value store behind Settings and the ad counter.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// settingCache maps key to the stored setting; a nil value records a known miss.
	settingCache *expirable.LRU[string, *Setting]

	now func() time.Time
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:       driver,
		profile:      profile,
		settingCache: expirable.NewLRU[string, *Setting](settingCacheSize, nil, settingCacheTTL),
		now:          time.Now,
	}
}

// Migrate prepares the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	s.settingCache.Purge()
	return s.driver.Close()
}

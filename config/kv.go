package config

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-floorplan/storage"
	"gorm.io/gorm"
)

// NewKV picks the storage backend named by KV_BACKEND. db is only used by the gorm backend.
func NewKV(ctx context.Context, cfg Config, db *gorm.DB) (storage.KV, func(), error) {
	noop := func() {}
	switch cfg.KVBackend {
	case BackendGorm:
		if db == nil {
			return nil, noop, fmt.Errorf("gorm backend needs a database")
		}
		return storage.NewGormKV(db), noop, nil
	case BackendRedis:
		client, err := NewRedisClient(ctx)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisKV(client), func() { client.Close() }, nil
	case BackendMemory:
		return storage.NewMemoryKV(), noop, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", storage.ErrUnknownBackend, cfg.KVBackend)
}

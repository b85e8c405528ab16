// Package storage is the key-value port behind the layout and reservation
// stores. Values are opaque JSON documents; there is no versioning, the last
// writer wins.
package storage

import (
	"context"
	"errors"
)

// ErrUnknownBackend is returned by config.NewKV for an unrecognised KV_BACKEND.
var ErrUnknownBackend = errors.New("storage: unknown kv backend")

type KV interface {
	// Get returns found=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

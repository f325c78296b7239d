package repository

import "context"

// KeyValueRepository is a flat string store. SetMany and Reset are atomic.
type KeyValueRepository interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// GetMany returns the values of the keys that exist.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// SetMany upserts every entry in one transaction.
	SetMany(ctx context.Context, entries map[string]string) error
	// Reset deletes every key, then writes entries, in one transaction.
	Reset(ctx context.Context, entries map[string]string) error
}

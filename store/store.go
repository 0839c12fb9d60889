package store

import "context"

// Prefix namespaces every key this system writes. FlushAll only ever
// touches keys under it.
const Prefix = "bingo:"

// CardKey builds the store key for a card oid.
func CardKey(oid string) string { return Prefix + oid }

// UserKey builds the store key for a user oid.
func UserKey(oid string) string { return Prefix + oid }

// GameKey builds the store key for a room's game.
func GameKey(room string) string { return Prefix + "game:" + room }

// Store is the persistence contract. Values are opaque JSON documents.
// A missing key is not an error: Get returns (nil, nil) and Update's fn
// receives nil; the caller decides whether absence is fatal.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Update atomically rewrites one key. fn receives the current value
	// (nil when absent) and returns the replacement; returning nil skips
	// the write. Backends with no native transactions compare-and-set
	// with bounded retries and return ErrWriteConflict when every attempt
	// lost the race.
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error

	// FlushAll deletes every key under Prefix.
	FlushAll(ctx context.Context) error
}

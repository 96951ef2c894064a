// Package kv defines the durable key-value store consumed by the session
// for clock state, ledger state, the transaction log, and valuation
// snapshots. Implementations include an in-memory store (tests and
// development), a filesystem store (local play), and Redis.
//
// The core only relies on read-your-writes consistency within a session and
// durability across reloads; the physical format is the implementation's
// business.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence interface.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix, in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}

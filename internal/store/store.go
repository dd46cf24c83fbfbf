// Package store provides the key-value persistence layer of the storefront.
// Every collection (users, products, cart lines, orders) is serialized as a
// single JSON value under a fixed key, mirroring the schema the UI pages read
// directly. Backends exist for in-memory maps, a single JSON file, MySQL and
// Redis; all of them implement the same Store interface so the service layer
// never knows which one it is talking to.
package store

import (
	"context"
	"errors"
)

// Fixed keys forming the storage schema. Other collaborators read these
// shapes verbatim, so the names are part of the external contract.
const (
	KeyUsers       = "users"
	KeyLoggedIn    = "isLoggedIn"
	KeyCurrentUser = "currentUser"
	KeyProducts    = "products"
	KeyCart        = "cart"
	KeyOrders      = "orders"
	KeyNewsletter  = "newsletter_subscribers"
)

// ErrNotFound is returned by Get when no value exists under the key.
// Callers are expected to fall back to a default value instead of failing.
var ErrNotFound = errors.New("store: key not found")

// Store persists JSON-serializable values under string keys. Set writes
// synchronously; there is no batching and no atomicity across keys.
type Store interface {
	// Get decodes the value stored under key into dest. It returns
	// ErrNotFound when the key is absent and a decode error when the
	// stored bytes are not valid JSON for dest.
	Get(ctx context.Context, key string, dest any) error
	// Set JSON-encodes value and persists it under key, replacing any
	// previous value.
	Set(ctx context.Context, key string, value any) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Clear deletes every key owned by this store.
	Clear(ctx context.Context) error
}

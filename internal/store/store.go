package store

import "context"

// Collection keys. Each holds one whole collection serialized as a JSON
// array; every Set replaces the previous value in its entirety, so the
// last writer always wins.
const (
	KeyProducts   = "products"
	KeyOrders     = "orders"
	KeyPromotions = "promotions"
	KeyReviews    = "reviews"
	KeyAccounts   = "customerAccounts"
)

// Store is the shared key-value persistence layer. Multiple independent
// execution contexts (API instances, workers, tests) may hold handles to the
// same store; there is no locking, versioning, or transaction spanning keys.
type Store interface {
	// Get returns the value for key. The second return is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the whole value for key.
	Set(ctx context.Context, key string, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Watch delivers the new value of key after each Set by any handle,
	// until ctx is canceled. Delivery is best-effort: a slow receiver may
	// miss intermediate values. Backends without a change-notification
	// facility return an error and callers degrade to local-only behavior.
	Watch(ctx context.Context, key string) (<-chan string, error)

	Close() error
}

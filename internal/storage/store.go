package storage

import "context"

// Well-known keys shared with the storefront collaborators.
const (
	KeyProducts    = "ecommerce_products"
	KeyCart        = "ecommerce_cart"
	KeyChatHistory = "paboy_history"
)

// Store is the persistent key-value contract the catalog engine and its
// collaborators write through to. Values are JSON-encoded documents.
type Store interface {
	// Get returns the value for key. The boolean reports whether the key
	// exists; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

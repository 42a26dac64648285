package shopify

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates the store domain or access token is missing.
	// Operations fail with it before any network I/O is attempted.
	ErrNotConfigured = errors.New("shopify: store domain and access token not configured")

	// ErrCartNotFound indicates the platform no longer resolves a cart id.
	// Callers treat it as "cart expired, create a new one".
	ErrCartNotFound = errors.New("shopify: cart not found")
)

// TransportError is a non-success HTTP response from the platform.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shopify: unexpected status %d", e.StatusCode)
}

// APIError carries the explicit error entries of a response: top-level
// GraphQL errors or a mutation's userErrors. Partial data alongside them is
// always discarded.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return "shopify: unknown api error"
	}
	return "shopify: " + e.Messages[0]
}

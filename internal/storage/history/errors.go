package history

import "errors"

var (
	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("history: store is closed")

	// ErrMissingDSN indicates a configuration without a connection string.
	ErrMissingDSN = errors.New("history: missing DSN")

	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("history: entry not found")
)

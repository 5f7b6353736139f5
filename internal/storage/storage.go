// Package storage wires the persistence layers together: the key-value
// store holding ledger snapshots and the relational store holding
// submission history.
package storage

import (
	"fmt"
	"io"

	"github.com/nvalette/marketd/internal/storage/database"
	"github.com/nvalette/marketd/internal/storage/database/leveldb"
	"github.com/nvalette/marketd/internal/storage/database/pebble"
)

// Backend names accepted by Open.
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
)

// Store is a key-value database that can be closed.
type Store interface {
	database.DB
	io.Closer
}

// Open opens the key-value store with the named backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendPebble:
		return pebble.Open(path)
	case BackendLevelDB:
		return leveldb.Open(path)
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnknownBackend, backend)
	}
}

// Package snapshot persists the full ledger state into the key-value
// store. Snapshots are msgpack-encoded and lz4-compressed; the node writes
// one at shutdown and restores it at startup.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/storage/database"
)

// ErrNoSnapshot is returned when the store holds no snapshot yet.
var ErrNoSnapshot = errors.New("no snapshot present")

var latestKey = []byte("snapshot/latest")

// envelope wraps the state dump with versioning metadata.
type envelope struct {
	Version int
	Applied uint64
	State   *ledger.Dump
}

const currentVersion = 1

// Store reads and writes ledger snapshots in a key-value database.
type Store struct {
	db     database.DB
	handle codec.MsgpackHandle
}

func NewStore(db database.DB) *Store {
	return &Store{db: db}
}

// Save captures the ledger's current state and writes it as the latest
// snapshot.
func (s *Store) Save(ctx context.Context, l *ledger.Ledger) error {
	var dump *ledger.Dump
	l.Read(func(st *ledger.State) {
		dump = st.Export()
	})

	env := envelope{
		Version: currentVersion,
		Applied: l.AppliedCount(),
		State:   dump,
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := codec.NewEncoder(zw, &s.handle).Encode(&env); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}

	return s.db.Write(ctx, latestKey, buf.Bytes())
}

// Load reads the latest snapshot and rebuilds the state. It returns the
// number of units of work the snapshot had seen.
func (s *Store) Load(ctx context.Context) (*ledger.State, uint64, error) {
	raw, err := s.db.Read(ctx, latestKey)
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, 0, ErrNoSnapshot
		}
		return nil, 0, err
	}

	zr := lz4.NewReader(bytes.NewReader(raw))
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var env envelope
	if err := codec.NewDecoderBytes(data, &s.handle).Decode(&env); err != nil {
		return nil, 0, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if env.Version != currentVersion {
		return nil, 0, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if env.State == nil {
		return nil, 0, errors.New("snapshot holds no state")
	}

	return ledger.FromDump(env.State), env.Applied, nil
}

// Restore loads the latest snapshot into the ledger. It reports false
// without error when no snapshot exists yet.
func (s *Store) Restore(ctx context.Context, l *ledger.Ledger) (bool, error) {
	state, applied, err := s.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return false, nil
		}
		return false, err
	}
	l.Replace(state, applied)
	return true, nil
}

// Package ledger holds the shared ledger state: accounts, the two asset
// collections, operator approvals, the listing arena, and the fee
// configuration. Mutation happens exclusively through a StateTable built
// over the state and committed atomically; the Ledger wrapper provides the
// global serialization every unit of work relies on.
package ledger

import (
	"sync"
)

// Ledger wraps State with the lock that gives units of work their total
// order. Writers hold the write lock for the full unit of work; readers
// take the read lock.
type Ledger struct {
	mu sync.RWMutex

	state *State

	// applied counts committed units of work.
	applied uint64
}

func New(state *State) *Ledger {
	return &Ledger{state: state}
}

// Begin locks the ledger for one unit of work and returns a StateTable
// over the current state. The caller must call the returned done func
// exactly once, after either committing or discarding the table.
func (l *Ledger) Begin() (table *StateTable, done func(committed bool)) {
	l.mu.Lock()
	table = NewStateTable(l.state)
	return table, func(committed bool) {
		if committed {
			table.Apply()
			l.applied++
		}
		l.mu.Unlock()
	}
}

// Read runs fn with read access to the state. fn must not retain the
// *State beyond the call.
func (l *Ledger) Read(fn func(*State)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.state)
}

// AppliedCount reports how many units of work have committed.
func (l *Ledger) AppliedCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.applied
}

// Replace swaps in a restored state (snapshot load at startup), along with
// the applied counter the snapshot carried.
func (l *Ledger) Replace(state *State, applied uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
	l.applied = applied
}

package asset

import (
	"github.com/nvalette/marketd/internal/core/types"
)

// ReceiveHook is a recipient-supplied callback run when an asset lands on
// the recipient's account. Returning a non-nil error refuses receipt and
// aborts the enclosing unit of work.
type ReceiveHook func(ref types.AssetRef, from, to types.AccountID, quantity uint64) error

// HookSet registers receive hooks per account. Hooks are in-process state,
// not ledger state; they model the receive callbacks the underlying asset
// standards fire on transfer.
type HookSet struct {
	hooks map[types.AccountID]ReceiveHook
}

func NewHookSet() *HookSet {
	return &HookSet{hooks: make(map[types.AccountID]ReceiveHook)}
}

func (h *HookSet) Register(account types.AccountID, hook ReceiveHook) {
	h.hooks[account] = hook
}

func (h *HookSet) Unregister(account types.AccountID) {
	delete(h.hooks, account)
}

func (h *HookSet) Lookup(account types.AccountID) ReceiveHook {
	return h.hooks[account]
}

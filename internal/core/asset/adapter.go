// Package asset provides a uniform ownership-transfer capability over the
// two asset collections: unique (single-owner) and divisible (per-holder
// balance) assets.
package asset

import (
	"errors"
	"fmt"

	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

var (
	ErrAssetNotFound    = errors.New("asset does not exist")
	ErrNotHeld          = errors.New("holder does not hold the requested quantity")
	ErrBadQuantity      = errors.New("quantity must be positive")
	ErrRecipientRefused = errors.New("recipient refused receipt")
)

// Adapter moves assets between holders. Transfers invoke the recipient's
// receive hook, if one is registered, after the balance or ownership change
// has been written to the view.
type Adapter struct {
	hooks *HookSet
}

func NewAdapter(hooks *HookSet) *Adapter {
	if hooks == nil {
		hooks = NewHookSet()
	}
	return &Adapter{hooks: hooks}
}

func (a *Adapter) Hooks() *HookSet {
	return a.hooks
}

// HolderQuantity reports how much of ref the holder currently holds: 1 or 0
// for unique assets, the holder's balance for divisible ones.
func (a *Adapter) HolderQuantity(v ledger.View, ref types.AssetRef, holder types.AccountID) (uint64, error) {
	switch ref.Kind {
	case types.Unique:
		e, ok := v.UniqueAsset(ref.ID)
		if !ok {
			return 0, ErrAssetNotFound
		}
		if e.Owner == holder {
			return 1, nil
		}
		return 0, nil
	case types.Divisible:
		e, ok := v.DivisibleAsset(ref.ID)
		if !ok {
			return 0, ErrAssetNotFound
		}
		return e.Balances[holder], nil
	default:
		return 0, fmt.Errorf("unknown asset kind %d", ref.Kind)
	}
}

// IsTransferApproved reports whether operator may move holder's assets in
// ref's collection: either a blanket operator approval, or (unique assets
// only) a per-asset approval on ref itself.
func (a *Adapter) IsTransferApproved(v ledger.View, ref types.AssetRef, holder, operator types.AccountID) bool {
	if holder == operator {
		return true
	}
	if v.OperatorApproved(holder, operator) {
		return true
	}
	if ref.Kind == types.Unique {
		if e, ok := v.UniqueAsset(ref.ID); ok && e.Owner == holder && e.Approved == operator {
			return !operator.IsZero()
		}
	}
	return false
}

// Transfer moves quantity of ref from one holder to another. The recipient
// receive hook runs after the move is written to the view; a hook error
// aborts with ErrRecipientRefused and the enclosing unit of work rolls
// everything back.
func (a *Adapter) Transfer(v ledger.View, ref types.AssetRef, from, to types.AccountID, quantity uint64) error {
	if quantity == 0 {
		return ErrBadQuantity
	}

	var err error
	switch ref.Kind {
	case types.Unique:
		err = transferUnique(v, ref.ID, from, to, quantity)
	case types.Divisible:
		err = transferDivisible(v, ref.ID, from, to, quantity)
	default:
		err = fmt.Errorf("unknown asset kind %d", ref.Kind)
	}
	if err != nil {
		return err
	}

	if hook := a.hooks.Lookup(to); hook != nil {
		if hookErr := hook(ref, from, to, quantity); hookErr != nil {
			return fmt.Errorf("%w: %v", ErrRecipientRefused, hookErr)
		}
	}
	return nil
}

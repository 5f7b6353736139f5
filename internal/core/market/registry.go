// Package market implements the marketplace core: the listing registry,
// the settlement engine that exchanges assets for native currency, and the
// fee path for direct unique-asset transfers.
package market

import (
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// Registry owns the listing arena. Listings are only ever created and
// deactivated through it; records are never deleted.
type Registry struct {
	// Marketplace is the module identity holders must approve before
	// their assets can be listed or settled.
	Marketplace types.AccountID

	adapter *asset.Adapter
}

func NewRegistry(marketplace types.AccountID, adapter *asset.Adapter) *Registry {
	return &Registry{Marketplace: marketplace, adapter: adapter}
}

// Create validates and stores a new active listing, returning its ID.
// The seller must currently hold at least quantity of the asset and must
// have transfer-approved the marketplace identity.
func (r *Registry) Create(v ledger.View, seller types.AccountID, ref types.AssetRef, quantity uint64, pricePerUnit amount.Amount, createdSeq uint64) (types.ListingID, error) {
	if !pricePerUnit.IsPositive() {
		return 0, ErrBadPrice
	}
	if quantity == 0 {
		return 0, ErrBadQuantity
	}
	if ref.Kind == types.Unique && quantity != 1 {
		return 0, ErrBadQuantity
	}

	held, err := r.adapter.HolderQuantity(v, ref, seller)
	if err != nil {
		return 0, err
	}
	if held < quantity {
		return 0, asset.ErrNotHeld
	}
	if !r.adapter.IsTransferApproved(v, ref, seller, r.Marketplace) {
		return 0, ErrNotApproved
	}

	id := v.AppendListing(&ledger.Listing{
		Seller:       seller,
		Ref:          ref,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		Active:       true,
		CreatedSeq:   createdSeq,
	})
	return id, nil
}

// Cancel deactivates a listing. Only the seller may cancel, and only while
// the listing is active. No funds or assets move.
func (r *Registry) Cancel(v ledger.View, caller types.AccountID, id types.ListingID) error {
	l, ok := v.Listing(id)
	if !ok {
		return ErrListingNotFound
	}
	// Authorization first: a stranger is refused before learning whether
	// the listing is still active.
	if l.Seller != caller {
		return ErrNotSeller
	}
	if !l.Active {
		return ErrListingInactive
	}
	l.Active = false
	return nil
}

// Active returns every active listing in insertion order.
func (r *Registry) Active(v ledger.View) []ledger.Listing {
	var out []ledger.Listing
	v.ForEachListing(func(l *ledger.Listing) bool {
		if l.Active {
			out = append(out, *l)
		}
		return true
	})
	return out
}

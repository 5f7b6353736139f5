package asset

import (
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// transferDivisible moves quantity from the sender's balance to the
// recipient's.
func transferDivisible(v ledger.View, id types.AssetID, from, to types.AccountID, quantity uint64) error {
	e, ok := v.DivisibleAsset(id)
	if !ok {
		return ErrAssetNotFound
	}
	if e.Balances[from] < quantity {
		return ErrNotHeld
	}
	e.Balances[from] -= quantity
	if e.Balances[from] == 0 {
		delete(e.Balances, from)
	}
	e.Balances[to] += quantity
	return nil
}

// MintDivisible creates a divisible asset and credits the full supply to
// the issuer.
func MintDivisible(v ledger.View, id types.AssetID, issuer types.AccountID, supply uint64, metadataURI string) error {
	if supply == 0 {
		return ErrBadQuantity
	}
	return v.CreateDivisibleAsset(&ledger.DivisibleAssetEntry{
		ID:          id,
		Supply:      supply,
		Balances:    map[types.AccountID]uint64{issuer: supply},
		MetadataURI: metadataURI,
	})
}

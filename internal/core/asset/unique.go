package asset

import (
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// transferUnique moves sole ownership. Quantity must be exactly 1 and the
// per-asset approval is cleared on every ownership change.
func transferUnique(v ledger.View, id types.AssetID, from, to types.AccountID, quantity uint64) error {
	if quantity != 1 {
		return ErrBadQuantity
	}
	e, ok := v.UniqueAsset(id)
	if !ok {
		return ErrAssetNotFound
	}
	if e.Owner != from {
		return ErrNotHeld
	}
	e.Owner = to
	e.Approved = types.ZeroAccount
	return nil
}

// MintUnique creates a unique asset owned by owner.
func MintUnique(v ledger.View, id types.AssetID, owner types.AccountID, metadataURI string) error {
	return v.CreateUniqueAsset(&ledger.UniqueAssetEntry{
		ID:          id,
		Owner:       owner,
		MetadataURI: metadataURI,
	})
}

// ApproveUnique sets (or clears, with the zero account) the per-asset
// approval on a unique asset. The caller must already be verified as owner.
func ApproveUnique(v ledger.View, id types.AssetID, operator types.AccountID) error {
	e, ok := v.UniqueAsset(id)
	if !ok {
		return ErrAssetNotFound
	}
	e.Approved = operator
	return nil
}

package ledger

import (
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/types"
)

// AccountEntry is the ledger record for a participant.
type AccountEntry struct {
	ID      types.AccountID
	Balance amount.Amount
	// Sequence is the next transaction sequence this account must use.
	Sequence uint32
	// PubKey is the hex-encoded compressed public key, set on first
	// signed transaction. Empty when signature checks are disabled.
	PubKey string
}

func (e *AccountEntry) Clone() *AccountEntry {
	c := *e
	return &c
}

// UniqueAssetEntry is a single-owner asset.
type UniqueAssetEntry struct {
	ID    types.AssetID
	Owner types.AccountID
	// Approved is a per-asset transfer approval; cleared on every
	// ownership change.
	Approved    types.AccountID
	MetadataURI string
}

func (e *UniqueAssetEntry) Clone() *UniqueAssetEntry {
	c := *e
	return &c
}

// DivisibleAssetEntry is a quantity-balance asset: a supply distributed
// across holders.
type DivisibleAssetEntry struct {
	ID          types.AssetID
	Supply      uint64
	Balances    map[types.AccountID]uint64
	MetadataURI string
}

func (e *DivisibleAssetEntry) Clone() *DivisibleAssetEntry {
	c := *e
	c.Balances = make(map[types.AccountID]uint64, len(e.Balances))
	for k, v := range e.Balances {
		c.Balances[k] = v
	}
	return &c
}

// Listing is the unit of sale: a seller's standing offer of a quantity of
// one asset at a fixed unit price. Records are never deleted; a filled or
// cancelled listing stays in the arena with Active cleared.
type Listing struct {
	ID     types.ListingID
	Seller types.AccountID
	Ref    types.AssetRef
	// Quantity is the remaining sellable amount. Always 1 for unique
	// assets.
	Quantity     uint64
	PricePerUnit amount.Amount
	Active       bool
	// CreatedSeq is the unit-of-work counter at creation, kept for audit.
	CreatedSeq uint64
}

func (l *Listing) Clone() *Listing {
	c := *l
	return &c
}

// FeeConfig holds the platform-owner account and the fixed fee charged on
// direct (non-marketplace) unique-asset transfers.
type FeeConfig struct {
	PlatformOwner     types.AccountID
	DirectTransferFee amount.Amount
}

func (f *FeeConfig) Clone() *FeeConfig {
	c := *f
	return &c
}

// approvalKey identifies a blanket operator approval.
type approvalKey struct {
	Holder   types.AccountID
	Operator types.AccountID
}

package ledger

import (
	"github.com/nvalette/marketd/internal/core/types"
)

// View is mutable access to ledger state inside one unit of work. Entry
// accessors hand out working copies owned by the view; mutations become
// visible to other readers only when the enclosing StateTable commits.
type View interface {
	// Account returns the working copy for an account, if it exists.
	Account(id types.AccountID) (*AccountEntry, bool)

	// CreateAccount adds (or returns, if already present) the account.
	CreateAccount(id types.AccountID) *AccountEntry

	UniqueAsset(id types.AssetID) (*UniqueAssetEntry, bool)
	CreateUniqueAsset(e *UniqueAssetEntry) error

	DivisibleAsset(id types.AssetID) (*DivisibleAssetEntry, bool)
	CreateDivisibleAsset(e *DivisibleAssetEntry) error

	OperatorApproved(holder, operator types.AccountID) bool
	SetOperatorApproval(holder, operator types.AccountID, approved bool)

	// Listing returns the working copy of a listing, if it exists.
	Listing(id types.ListingID) (*Listing, bool)

	// AppendListing allocates the next listing ID, stores the listing
	// under it, and returns the ID.
	AppendListing(l *Listing) types.ListingID

	// ForEachListing visits listings in insertion order, including ones
	// appended within this unit of work.
	ForEachListing(fn func(*Listing) bool)

	// FeeConfig returns the working copy of the fee configuration.
	FeeConfig() *FeeConfig
}

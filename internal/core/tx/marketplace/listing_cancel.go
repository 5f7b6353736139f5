package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeListingCancel, func() tx.Transaction {
		return &ListingCancel{BaseTx: *tx.NewBaseTx(tx.TypeListingCancel, "")}
	})
}

// ListingCancel deactivates one of the account's own listings. The record
// survives, it just stops being settleable.
type ListingCancel struct {
	tx.BaseTx

	// ListingID identifies the listing to cancel (required)
	ListingID uint64 `json:"ListingID"`
}

// NewListingCancel creates a new ListingCancel transaction
func NewListingCancel(account string, id types.ListingID) *ListingCancel {
	return &ListingCancel{
		BaseTx:    *tx.NewBaseTx(tx.TypeListingCancel, account),
		ListingID: uint64(id),
	}
}

// Validate validates the ListingCancel transaction
func (l *ListingCancel) Validate() error {
	if err := l.BaseTx.Validate(); err != nil {
		return err
	}
	if l.ListingID == 0 {
		return errors.New("temINVALID: ListingID is required")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (l *ListingCancel) Flatten() (map[string]any, error) {
	flat := l.Common.ToMap()
	flat["ListingID"] = l.ListingID
	return flat, nil
}

// Apply cancels the listing.
func (l *ListingCancel) Apply(ctx *tx.ApplyContext) tx.Result {
	id := types.ListingID(l.ListingID)
	if err := ctx.Market.Registry.Cancel(ctx.View, ctx.AccountID, id); err != nil {
		return resultFromError(err)
	}

	ctx.Emit(tx.EventListingCancelled, map[string]any{
		"listingID": l.ListingID,
		"seller":    l.Account,
	})
	return tx.TesSUCCESS
}

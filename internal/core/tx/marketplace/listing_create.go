package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeListingCreate, func() tx.Transaction {
		return &ListingCreate{BaseTx: *tx.NewBaseTx(tx.TypeListingCreate, "")}
	})
}

// ListingCreate puts an asset up for sale. The seller must hold the listed
// quantity and must have transfer-approved the marketplace identity.
type ListingCreate struct {
	tx.BaseTx

	// AssetKind is "unique" or "divisible" (required)
	AssetKind string `json:"AssetKind"`

	// AssetID identifies the asset (required)
	AssetID uint64 `json:"AssetID"`

	// Quantity is the number of units for sale; must be 1 for unique assets
	Quantity uint64 `json:"Quantity"`

	// PricePerUnit is the price of one unit, in units of native currency
	PricePerUnit int64 `json:"PricePerUnit"`
}

// NewListingCreate creates a new ListingCreate transaction
func NewListingCreate(account string, ref types.AssetRef, quantity uint64, pricePerUnit amount.Amount) *ListingCreate {
	return &ListingCreate{
		BaseTx:       *tx.NewBaseTx(tx.TypeListingCreate, account),
		AssetKind:    ref.Kind.String(),
		AssetID:      uint64(ref.ID),
		Quantity:     quantity,
		PricePerUnit: pricePerUnit.Units(),
	}
}

// Validate validates the ListingCreate transaction
func (l *ListingCreate) Validate() error {
	if err := l.BaseTx.Validate(); err != nil {
		return err
	}
	kind, err := types.ParseAssetKind(l.AssetKind)
	if err != nil {
		return errors.New("temBAD_ASSET: AssetKind must be unique or divisible")
	}
	if l.PricePerUnit <= 0 {
		return errors.New("temBAD_PRICE: PricePerUnit must be positive")
	}
	if l.Quantity == 0 {
		return errors.New("temBAD_QUANTITY: Quantity must be positive")
	}
	if kind == types.Unique && l.Quantity != 1 {
		return errors.New("temBAD_QUANTITY: unique assets list as a single unit")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (l *ListingCreate) Flatten() (map[string]any, error) {
	flat := l.Common.ToMap()
	flat["AssetKind"] = l.AssetKind
	flat["AssetID"] = l.AssetID
	flat["Quantity"] = l.Quantity
	flat["PricePerUnit"] = l.PricePerUnit
	return flat, nil
}

// Apply creates the listing and reports its ID.
func (l *ListingCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	kind, err := types.ParseAssetKind(l.AssetKind)
	if err != nil {
		return tx.TemBAD_ASSET
	}
	ref := types.AssetRef{Kind: kind, ID: types.AssetID(l.AssetID)}

	id, err := ctx.Market.Registry.Create(ctx.View, ctx.AccountID, ref, l.Quantity, amount.New(l.PricePerUnit), uint64(l.GetSequence()))
	if err != nil {
		return resultFromError(err)
	}

	ctx.SetOutput("ListingID", uint64(id))
	ctx.Emit(tx.EventListingCreated, map[string]any{
		"listingID":    uint64(id),
		"seller":       l.Account,
		"asset":        ref.String(),
		"quantity":     l.Quantity,
		"pricePerUnit": l.PricePerUnit,
	})
	return tx.TesSUCCESS
}

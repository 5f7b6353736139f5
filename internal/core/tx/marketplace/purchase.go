package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypePurchase, func() tx.Transaction {
		return &Purchase{BaseTx: *tx.NewBaseTx(tx.TypePurchase, "")}
	})
}

// Purchase settles against a listing: asset units move to the buyer, the
// price reaches the seller, and any overpayment comes back. Divisible
// listings fill partially; unique listings settle whole.
type Purchase struct {
	tx.BaseTx

	// ListingID identifies the listing (required)
	ListingID uint64 `json:"ListingID"`

	// Quantity is the number of units to buy (required)
	Quantity uint64 `json:"Quantity"`

	// Payment is the attached payment in units of native currency; it must
	// cover Quantity times the listing price
	Payment int64 `json:"Payment"`
}

// NewPurchase creates a new Purchase transaction
func NewPurchase(account string, id types.ListingID, quantity uint64, payment amount.Amount) *Purchase {
	return &Purchase{
		BaseTx:    *tx.NewBaseTx(tx.TypePurchase, account),
		ListingID: uint64(id),
		Quantity:  quantity,
		Payment:   payment.Units(),
	}
}

// Validate validates the Purchase transaction
func (p *Purchase) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.ListingID == 0 {
		return errors.New("temINVALID: ListingID is required")
	}
	if p.Quantity == 0 {
		return errors.New("temBAD_QUANTITY: Quantity must be positive")
	}
	if p.Payment <= 0 {
		return errors.New("temBAD_AMOUNT: Payment must be positive")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (p *Purchase) Flatten() (map[string]any, error) {
	flat := p.Common.ToMap()
	flat["ListingID"] = p.ListingID
	flat["Quantity"] = p.Quantity
	flat["Payment"] = p.Payment
	return flat, nil
}

// Apply settles the purchase.
func (p *Purchase) Apply(ctx *tx.ApplyContext) tx.Result {
	id := types.ListingID(p.ListingID)

	total, err := ctx.Market.Settlement.Purchase(ctx.View, ctx.AccountID, id, p.Quantity, amount.New(p.Payment))
	if err != nil {
		return resultFromError(err)
	}

	l, _ := ctx.View.Listing(id)
	ctx.SetOutput("TotalPrice", total.Units())
	ctx.Emit(tx.EventListingFilled, map[string]any{
		"listingID": p.ListingID,
		"buyer":     p.Account,
		"seller":    l.Seller.String(),
		"quantity":  p.Quantity,
		"total":     total.Units(),
		"remaining": l.Quantity,
		"active":    l.Active,
	})
	return tx.TesSUCCESS
}

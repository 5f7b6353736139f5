package market

import (
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// Settlement executes purchases against the listing arena. A purchase is
// one atomic exchange: asset ownership moves to the buyer, exactly the
// listing price reaches the seller, and any overpayment returns to the
// buyer.
type Settlement struct {
	adapter *asset.Adapter

	// entered guards against re-entry from receive hooks fired during
	// the asset transfer. Units of work are globally serialized, so a
	// plain flag suffices.
	entered bool
}

func NewSettlement(adapter *asset.Adapter) *Settlement {
	return &Settlement{adapter: adapter}
}

// Purchase settles quantityToBuy units of listing id for the buyer, who
// attaches payment. Listing bookkeeping (quantity decrement, active flag)
// is finalized before the externally observable asset transfer runs, so a
// hook re-reading the listing sees the post-fill state and re-entry is
// refused outright.
func (s *Settlement) Purchase(v ledger.View, buyer types.AccountID, id types.ListingID, quantityToBuy uint64, payment amount.Amount) (amount.Amount, error) {
	if s.entered {
		return 0, ErrReentrancy
	}
	s.entered = true
	defer func() { s.entered = false }()

	l, ok := v.Listing(id)
	if !ok {
		return 0, ErrListingNotFound
	}
	if !l.Active {
		return 0, ErrListingInactive
	}
	if quantityToBuy == 0 {
		return 0, ErrBadQuantity
	}
	if quantityToBuy > l.Quantity {
		return 0, ErrInsufficientQuantity
	}

	total, ok := l.PricePerUnit.MulQuantity(quantityToBuy)
	if !ok {
		return 0, ErrOverflow
	}
	if payment < total {
		return 0, ErrInsufficientPayment
	}

	buyerAcct, ok := v.Account(buyer)
	if !ok || buyerAcct.Balance < payment {
		return 0, ErrInsufficientFunds
	}
	buyerAcct.Balance = buyerAcct.Balance.Sub(payment)

	// Effects before interactions: the listing reflects the fill before
	// the transfer can run any recipient callback.
	l.Quantity -= quantityToBuy
	if l.Quantity == 0 {
		l.Active = false
	}

	if err := s.adapter.Transfer(v, l.Ref, l.Seller, buyer, quantityToBuy); err != nil {
		return 0, err
	}

	sellerAcct := v.CreateAccount(l.Seller)
	sellerAcct.Balance = sellerAcct.Balance.Add(total)

	if refund := payment.Sub(total); refund.IsPositive() {
		buyerAcct.Balance = buyerAcct.Balance.Add(refund)
	}

	return total, nil
}

package market

import (
	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

// FeeOracle prices direct unique-asset transfers that bypass the listing
// arena. A fixed fee is charged to the party initiating the transfer and
// routed to the platform owner.
type FeeOracle struct {
	adapter *asset.Adapter
}

func NewFeeOracle(adapter *asset.Adapter) *FeeOracle {
	return &FeeOracle{adapter: adapter}
}

// Fee returns the current fixed fee for a direct transfer.
func (f *FeeOracle) Fee(v ledger.View) amount.Amount {
	return v.FeeConfig().DirectTransferFee
}

// SetFee updates the fixed fee. Only the platform owner may change it.
func (f *FeeOracle) SetFee(v ledger.View, caller types.AccountID, fee amount.Amount) error {
	cfg := v.FeeConfig()
	if caller != cfg.PlatformOwner {
		return ErrNotPlatformOwner
	}
	if fee.IsNegative() {
		return ErrBadFee
	}
	cfg.DirectTransferFee = fee
	return nil
}

// DirectTransfer moves a unique asset from its owner to a recipient
// outside the listing arena. The caller must be the owner or an approved
// operator for the asset, and must attach at least the current fee. The
// fee is credited to the platform owner and any overpayment is returned
// to the caller.
func (f *FeeOracle) DirectTransfer(v ledger.View, caller, from, to types.AccountID, id types.AssetID, payment amount.Amount) error {
	e, ok := v.UniqueAsset(id)
	if !ok {
		return asset.ErrAssetNotFound
	}
	if e.Owner != from {
		return asset.ErrNotHeld
	}

	ref := types.AssetRef{Kind: types.Unique, ID: id}
	if !f.adapter.IsTransferApproved(v, ref, from, caller) {
		return ErrNotApproved
	}

	cfg := v.FeeConfig()
	fee := cfg.DirectTransferFee
	if payment < fee {
		return ErrInsufficientPayment
	}

	callerAcct, ok := v.Account(caller)
	if !ok || callerAcct.Balance < payment {
		return ErrInsufficientFunds
	}
	callerAcct.Balance = callerAcct.Balance.Sub(payment)

	if err := f.adapter.Transfer(v, ref, from, to, 1); err != nil {
		return err
	}

	ownerAcct := v.CreateAccount(cfg.PlatformOwner)
	ownerAcct.Balance = ownerAcct.Balance.Add(fee)

	if refund := payment.Sub(fee); refund.IsPositive() {
		callerAcct.Balance = callerAcct.Balance.Add(refund)
	}
	return nil
}

package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeFeeSet, func() tx.Transaction {
		return &FeeSet{BaseTx: *tx.NewBaseTx(tx.TypeFeeSet, "")}
	})
}

// FeeSet updates the fixed fee on direct transfers. Only the platform
// owner may submit it.
type FeeSet struct {
	tx.BaseTx

	// Fee is the new fee in units of native currency; zero is allowed
	Fee int64 `json:"Fee"`
}

// NewFeeSet creates a new FeeSet transaction
func NewFeeSet(account string, fee amount.Amount) *FeeSet {
	return &FeeSet{
		BaseTx: *tx.NewBaseTx(tx.TypeFeeSet, account),
		Fee:    fee.Units(),
	}
}

// Validate validates the FeeSet transaction
func (f *FeeSet) Validate() error {
	if err := f.BaseTx.Validate(); err != nil {
		return err
	}
	if f.Fee < 0 {
		return errors.New("temBAD_FEE: Fee must not be negative")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (f *FeeSet) Flatten() (map[string]any, error) {
	flat := f.Common.ToMap()
	flat["Fee"] = f.Fee
	return flat, nil
}

// Apply updates the fee.
func (f *FeeSet) Apply(ctx *tx.ApplyContext) tx.Result {
	if err := ctx.Market.Fees.SetFee(ctx.View, ctx.AccountID, amount.New(f.Fee)); err != nil {
		return resultFromError(err)
	}
	return tx.TesSUCCESS
}

package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeDirectTransfer, func() tx.Transaction {
		return &DirectTransfer{BaseTx: *tx.NewBaseTx(tx.TypeDirectTransfer, "")}
	})
}

// DirectTransfer moves a unique asset outside the listing arena. The fixed
// platform fee is charged to the submitting account and routed to the
// platform owner. Owner is the current holder; it defaults to the account
// and differs only when an approved operator submits the transfer.
type DirectTransfer struct {
	tx.BaseTx

	// Owner is the hex-encoded current holder (optional, defaults to Account)
	Owner string `json:"Owner,omitempty"`

	// Destination is the hex-encoded recipient (required)
	Destination string `json:"Destination"`

	// AssetID identifies the unique asset (required)
	AssetID uint64 `json:"AssetID"`

	// Payment is the attached payment; it must cover the platform fee
	Payment int64 `json:"Payment"`
}

// NewDirectTransfer creates a new DirectTransfer transaction
func NewDirectTransfer(account, destination string, id types.AssetID, payment amount.Amount) *DirectTransfer {
	return &DirectTransfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeDirectTransfer, account),
		Destination: destination,
		AssetID:     uint64(id),
		Payment:     payment.Units(),
	}
}

// Validate validates the DirectTransfer transaction
func (d *DirectTransfer) Validate() error {
	if err := d.BaseTx.Validate(); err != nil {
		return err
	}
	if d.Destination == "" {
		return errors.New("temINVALID: Destination is required")
	}
	dest, err := types.ParseAccountID(d.Destination)
	if err != nil {
		return errors.New("temINVALID: Destination is not a valid account ID")
	}
	owner := d.Owner
	if owner == "" {
		owner = d.Account
	}
	// Compare decoded IDs: hex encodings of the same account may differ
	// in case. A malformed Account is caught by preflight.
	ownerID, err := types.ParseAccountID(owner)
	if err != nil {
		if d.Owner != "" {
			return errors.New("temINVALID: Owner is not a valid account ID")
		}
	} else if dest == ownerID {
		return errors.New("temSELF_TRANSFER: Destination may not be the owner")
	}
	if d.Payment < 0 {
		return errors.New("temBAD_AMOUNT: Payment must not be negative")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (d *DirectTransfer) Flatten() (map[string]any, error) {
	flat := d.Common.ToMap()
	if d.Owner != "" {
		flat["Owner"] = d.Owner
	}
	flat["Destination"] = d.Destination
	flat["AssetID"] = d.AssetID
	flat["Payment"] = d.Payment
	return flat, nil
}

// Apply runs the fee-charged transfer.
func (d *DirectTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	owner := ctx.AccountID
	if d.Owner != "" {
		var err error
		owner, err = types.ParseAccountID(d.Owner)
		if err != nil {
			return tx.TemINVALID
		}
	}
	dest, err := types.ParseAccountID(d.Destination)
	if err != nil {
		return tx.TemINVALID
	}

	id := types.AssetID(d.AssetID)
	if err := ctx.Market.Fees.DirectTransfer(ctx.View, ctx.AccountID, owner, dest, id, amount.New(d.Payment)); err != nil {
		return resultFromError(err)
	}

	ctx.Emit(tx.EventDirectTransfer, map[string]any{
		"asset":       types.AssetRef{Kind: types.Unique, ID: id}.String(),
		"owner":       owner.String(),
		"destination": d.Destination,
		"fee":         ctx.Market.Fees.Fee(ctx.View).Units(),
	})
	return tx.TesSUCCESS
}

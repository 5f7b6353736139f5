package marketplace

import (
	"errors"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/types"
)

func init() {
	tx.Register(tx.TypePayment, func() tx.Transaction {
		return &Payment{BaseTx: *tx.NewBaseTx(tx.TypePayment, "")}
	})
}

// Payment moves native currency between accounts. The destination account
// is created if it does not exist.
type Payment struct {
	tx.BaseTx

	// Destination is the hex-encoded recipient account ID (required)
	Destination string `json:"Destination"`

	// Amount is the amount to deliver, in units (required)
	Amount int64 `json:"Amount"`
}

// NewPayment creates a new Payment transaction
func NewPayment(account, destination string, amt amount.Amount) *Payment {
	return &Payment{
		BaseTx:      *tx.NewBaseTx(tx.TypePayment, account),
		Destination: destination,
		Amount:      amt.Units(),
	}
}

// Validate validates the Payment transaction
func (p *Payment) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Destination == "" {
		return errors.New("temINVALID: Destination is required")
	}
	dest, err := types.ParseAccountID(p.Destination)
	if err != nil {
		return errors.New("temINVALID: Destination is not a valid account ID")
	}
	// Compare decoded IDs: hex encodings of the same account may differ
	// in case.
	if src, err := types.ParseAccountID(p.Account); err == nil && src == dest {
		return errors.New("temSELF_TRANSFER: Destination may not be source")
	}
	if p.Amount <= 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

// Flatten returns a flat map of transaction fields
func (p *Payment) Flatten() (map[string]any, error) {
	m := p.Common.ToMap()
	m["Destination"] = p.Destination
	m["Amount"] = p.Amount
	return m, nil
}

// Apply moves the amount from the source to the destination.
func (p *Payment) Apply(ctx *tx.ApplyContext) tx.Result {
	dest, err := types.ParseAccountID(p.Destination)
	if err != nil {
		return tx.TemINVALID
	}

	amt := amount.New(p.Amount)
	if ctx.Account.Balance < amt {
		return tx.TecINSUFFICIENT_FUNDS
	}
	ctx.Account.Balance = ctx.Account.Balance.Sub(amt)

	destAcct := ctx.View.CreateAccount(dest)
	destAcct.Balance = destAcct.Balance.Add(amt)

	return tx.TesSUCCESS
}

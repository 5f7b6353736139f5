package tx

import (
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/market"
	"github.com/nvalette/marketd/internal/core/types"
)

// ApplyContext provides all the state and helpers needed to apply a
// transaction. It is passed to Appliable.Apply() instead of individual
// parameters.
type ApplyContext struct {
	// View provides read/write access to the unit of work's state table
	View ledger.View

	// AccountID is the decoded source account ID
	AccountID types.AccountID

	// Account is the source account working copy
	Account *ledger.AccountEntry

	// Market exposes the marketplace components (registry, settlement,
	// fee oracle, asset adapter)
	Market *market.Market

	// Output collects transaction-specific results surfaced to the
	// submitter (e.g. the allocated listing ID)
	Output map[string]any

	events []Event
}

// Emit queues an event for publication if the transaction succeeds.
func (ctx *ApplyContext) Emit(eventType string, data map[string]any) {
	ctx.events = append(ctx.events, Event{Type: eventType, Data: data})
}

// SetOutput records a transaction-specific result value.
func (ctx *ApplyContext) SetOutput(key string, value any) {
	if ctx.Output == nil {
		ctx.Output = make(map[string]any)
	}
	ctx.Output[key] = value
}

// Package testing provides a test harness for exercising the marketplace
// transaction engine: deterministic accounts, funding, submission with
// automatic sequence fill, and balance helpers.
package testing

import (
	"testing"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/market"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/tx/marketplace"
	"github.com/nvalette/marketd/internal/core/types"
)

// DefaultDirectTransferFee is the genesis fee on direct transfers.
const DefaultDirectTransferFee = amount.Amount(1000)

// TestEnv manages a test ledger environment for transaction testing.
type TestEnv struct {
	t      *testing.T
	ledger *ledger.Ledger
	engine *tx.Engine
	market *market.Market
	hooks  *asset.HookSet

	master      *Account
	marketplace *Account
}

// NewTestEnv creates a test environment: a genesis ledger whose platform
// owner is the master account, a marketplace identity, and an engine with
// signature verification disabled. Use SubmitSigned to exercise signatures.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	master := NewAccount("master")
	mkt := NewAccount("marketplace")

	state := ledger.NewGenesisState(ledger.GenesisConfig{
		PlatformOwner:     master.ID,
		PlatformBalance:   amount.FromDecimal(1_000_000),
		DirectTransferFee: DefaultDirectTransferFee,
	})
	l := ledger.New(state)

	hooks := asset.NewHookSet()
	m := market.NewMarket(mkt.ID, hooks)
	engine := tx.NewEngine(l, m, tx.EngineConfig{
		SkipSignatureVerification: true,
	})

	return &TestEnv{
		t:           t,
		ledger:      l,
		engine:      engine,
		market:      m,
		hooks:       hooks,
		master:      master,
		marketplace: mkt,
	}
}

// Engine returns the transaction engine.
func (e *TestEnv) Engine() *tx.Engine {
	return e.engine
}

// Ledger returns the underlying ledger.
func (e *TestEnv) Ledger() *ledger.Ledger {
	return e.ledger
}

// Hooks returns the receive-hook set shared with the asset adapter.
func (e *TestEnv) Hooks() *asset.HookSet {
	return e.hooks
}

// Master returns the platform-owner account.
func (e *TestEnv) Master() *Account {
	return e.master
}

// Marketplace returns the marketplace identity account.
func (e *TestEnv) Marketplace() *Account {
	return e.marketplace
}

// Fund funds each account with 1000 coins from the master account.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, amount.FromDecimal(1000))
	}
}

// FundAmount funds an account with a specific amount.
func (e *TestEnv) FundAmount(acc *Account, amt amount.Amount) {
	e.t.Helper()

	p := marketplace.NewPayment(e.master.Address, acc.Address, amt)
	result := e.Submit(p)
	if !result.Applied {
		e.t.Fatalf("Failed to fund account %s: %s", acc.Name, result.Result)
	}
}

// Submit fills in the sequence number if unset and runs the transaction
// through the engine.
func (e *TestEnv) Submit(transaction tx.Transaction) tx.ApplyResult {
	e.t.Helper()

	common := transaction.GetCommon()
	if common.Sequence == nil {
		id, err := types.ParseAccountID(common.Account)
		if err != nil {
			e.t.Fatalf("Submit: bad account %q: %v", common.Account, err)
		}
		common.SetSequence(e.seqFor(id))
	}
	return e.engine.Submit(transaction)
}

// SubmitSigned signs the transaction with the given account's key and
// submits it through an engine that verifies signatures.
func (e *TestEnv) SubmitSigned(transaction tx.Transaction, signer *Account) tx.ApplyResult {
	e.t.Helper()

	common := transaction.GetCommon()
	if common.Sequence == nil {
		common.SetSequence(e.seqFor(signer.ID))
	}
	common.SigningPubKey = signer.PublicKeyHex()

	payload, err := tx.SigningPayload(transaction)
	if err != nil {
		e.t.Fatalf("SubmitSigned: %v", err)
	}
	common.TxnSignature = signer.Sign(payload)

	verifying := tx.NewEngine(e.ledger, e.market, tx.EngineConfig{})
	return verifying.Submit(transaction)
}

// Seq returns the next sequence number for an account.
func (e *TestEnv) Seq(acc *Account) uint32 {
	return e.seqFor(acc.ID)
}

func (e *TestEnv) seqFor(id types.AccountID) uint32 {
	var seq uint32
	e.ledger.Read(func(s *ledger.State) {
		if entry, ok := s.Account(id); ok {
			seq = entry.Sequence
		}
	})
	return seq
}

// Balance returns the account's native-currency balance.
func (e *TestEnv) Balance(acc *Account) amount.Amount {
	var bal amount.Amount
	e.ledger.Read(func(s *ledger.State) {
		if entry, ok := s.Account(acc.ID); ok {
			bal = entry.Balance
		}
	})
	return bal
}

// Listing returns a listing by ID.
func (e *TestEnv) Listing(id types.ListingID) (ledger.Listing, bool) {
	var l ledger.Listing
	var ok bool
	e.ledger.Read(func(s *ledger.State) {
		l, ok = s.Listing(id)
	})
	return l, ok
}

// ActiveListings returns every active listing.
func (e *TestEnv) ActiveListings() []ledger.Listing {
	var out []ledger.Listing
	e.ledger.Read(func(s *ledger.State) {
		out = s.ActiveListings()
	})
	return out
}

// UniqueOwner returns the owner of a unique asset.
func (e *TestEnv) UniqueOwner(id types.AssetID) (types.AccountID, bool) {
	var owner types.AccountID
	var ok bool
	e.ledger.Read(func(s *ledger.State) {
		var entry ledger.UniqueAssetEntry
		entry, ok = s.UniqueAsset(id)
		owner = entry.Owner
	})
	return owner, ok
}

// DivisibleBalance returns a holder's balance of a divisible asset.
func (e *TestEnv) DivisibleBalance(id types.AssetID, holder *Account) uint64 {
	var bal uint64
	e.ledger.Read(func(s *ledger.State) {
		if entry, ok := s.DivisibleAsset(id); ok {
			bal = entry.Balances[holder.ID]
		}
	})
	return bal
}

// MintUnique mints a unique asset for the account and fails the test on error.
func (e *TestEnv) MintUnique(acc *Account, id types.AssetID, uri string) {
	e.t.Helper()

	m := marketplace.NewAssetMint(acc.Address, types.Unique, id, 0)
	m.MetadataURI = uri
	result := e.Submit(m)
	if !result.Applied {
		e.t.Fatalf("Failed to mint unique asset %d for %s: %s", id, acc.Name, result.Result)
	}
}

// MintDivisible mints a divisible asset supply for the account.
func (e *TestEnv) MintDivisible(acc *Account, id types.AssetID, supply uint64) {
	e.t.Helper()

	result := e.Submit(marketplace.NewAssetMint(acc.Address, types.Divisible, id, supply))
	if !result.Applied {
		e.t.Fatalf("Failed to mint divisible asset %d for %s: %s", id, acc.Name, result.Result)
	}
}

// ApproveMarketplace grants the marketplace identity a blanket operator
// approval over the account's assets.
func (e *TestEnv) ApproveMarketplace(acc *Account) {
	e.t.Helper()

	result := e.Submit(marketplace.NewApprovalSet(acc.Address, e.marketplace.Address, true))
	if !result.Applied {
		e.t.Fatalf("Failed to approve marketplace for %s: %s", acc.Name, result.Result)
	}
}

// Package marketplace contains integration tests for the marketplace
// transaction flows: listing lifecycle, settlement, partial fills, direct
// transfers and their fee routing.
package marketplace

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/tx"
	"github.com/nvalette/marketd/internal/core/tx/marketplace"
	"github.com/nvalette/marketd/internal/core/types"
	mtesting "github.com/nvalette/marketd/internal/testing"
)

// A unique asset sells whole at its exact price: the listing deactivates,
// ownership moves, the seller receives the price, the buyer pays it exactly.
func TestUniqueSaleExactPayment(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "ipfs://meta/5")
	env.ApproveMarketplace(alice)

	price := amount.FromDecimal(1)
	create := marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Unique, ID: 5}, 1, price)
	result := env.Submit(create)
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	aliceBefore := env.Balance(alice)
	bobBefore := env.Balance(bob)

	result = env.Submit(marketplace.NewPurchase(bob.Address, listingID, 1, price))
	mtesting.RequireTxSuccess(t, result)

	l, ok := env.Listing(listingID)
	require.True(t, ok)
	require.False(t, l.Active)

	owner, ok := env.UniqueOwner(5)
	require.True(t, ok)
	require.Equal(t, bob.ID, owner)

	mtesting.RequireBalance(t, env, alice, aliceBefore.Add(price))
	mtesting.RequireBalance(t, env, bob, bobBefore.Sub(price))
}

// A divisible listing fills partially and stays active with the remainder.
func TestDivisiblePartialFill(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintDivisible(alice, 7, 10)
	env.ApproveMarketplace(alice)

	pricePerUnit := amount.FromDecimal(0.01)
	create := marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Divisible, ID: 7}, 10, pricePerUnit)
	result := env.Submit(create)
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	aliceBefore := env.Balance(alice)

	payment := amount.FromDecimal(0.04)
	result = env.Submit(marketplace.NewPurchase(bob.Address, listingID, 4, payment))
	mtesting.RequireTxSuccess(t, result)

	l, ok := env.Listing(listingID)
	require.True(t, ok)
	require.True(t, l.Active)
	require.Equal(t, uint64(6), l.Quantity)

	require.Equal(t, uint64(4), env.DivisibleBalance(7, bob))
	require.Equal(t, uint64(6), env.DivisibleBalance(7, alice))
	mtesting.RequireBalance(t, env, alice, aliceBefore.Add(payment))
}

// Asking for more than the remaining quantity is rejected with no state
// change at all.
func TestOverdrawnPurchaseLeavesStateUntouched(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintDivisible(alice, 7, 10)
	env.ApproveMarketplace(alice)

	create := marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Divisible, ID: 7}, 10, amount.FromDecimal(0.01))
	result := env.Submit(create)
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	mtesting.RequireTxSuccess(t, env.Submit(marketplace.NewPurchase(bob.Address, listingID, 4, amount.FromDecimal(0.04))))

	aliceBefore := env.Balance(alice)
	bobBefore := env.Balance(bob)
	applied := env.Ledger().AppliedCount()

	// Only 6 remain.
	result = env.Submit(marketplace.NewPurchase(bob.Address, listingID, 11, amount.FromDecimal(0.11)))
	mtesting.RequireTxFail(t, result, tx.TecINSUFFICIENT_QUANTITY)

	l, _ := env.Listing(listingID)
	require.True(t, l.Active)
	require.Equal(t, uint64(6), l.Quantity)
	require.Equal(t, uint64(4), env.DivisibleBalance(7, bob))
	mtesting.RequireBalance(t, env, alice, aliceBefore)
	mtesting.RequireBalance(t, env, bob, bobBefore)
	require.Equal(t, applied, env.Ledger().AppliedCount())
}

// Cancelling deactivates the listing; purchases against it are refused and
// only the seller may cancel.
func TestCancelListing(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "")
	env.ApproveMarketplace(alice)

	create := marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Unique, ID: 5}, 1, amount.FromDecimal(1))
	result := env.Submit(create)
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	result = env.Submit(marketplace.NewListingCancel(bob.Address, listingID))
	mtesting.RequireTxFail(t, result, tx.TecNOT_SELLER)

	mtesting.RequireTxSuccess(t, env.Submit(marketplace.NewListingCancel(alice.Address, listingID)))

	l, ok := env.Listing(listingID)
	require.True(t, ok)
	require.False(t, l.Active)

	result = env.Submit(marketplace.NewPurchase(bob.Address, listingID, 1, amount.FromDecimal(1)))
	mtesting.RequireTxFail(t, result, tx.TecINACTIVE_LISTING)

	// The asset never moved.
	owner, _ := env.UniqueOwner(5)
	require.Equal(t, alice.ID, owner)
}

// A direct transfer charges the fixed fee to the caller, routes it to the
// platform owner, and refunds the excess.
func TestDirectTransferFeeRouting(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "")

	masterBefore := env.Balance(env.Master())
	aliceBefore := env.Balance(alice)

	fee := amount.FromDecimal(0.001)
	require.Equal(t, mtesting.DefaultDirectTransferFee, fee)

	transfer := marketplace.NewDirectTransfer(alice.Address, bob.Address, 5, amount.FromDecimal(0.0015))
	mtesting.RequireTxSuccess(t, env.Submit(transfer))

	owner, _ := env.UniqueOwner(5)
	require.Equal(t, bob.ID, owner)

	mtesting.RequireBalance(t, env, env.Master(), masterBefore.Add(fee))
	// Overpayment of 0.0005 came back; only the fee was spent.
	mtesting.RequireBalance(t, env, alice, aliceBefore.Sub(fee))
}

// Underpaying the direct-transfer fee is refused.
func TestDirectTransferUnderpaid(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "")

	transfer := marketplace.NewDirectTransfer(alice.Address, bob.Address, 5, amount.FromDecimal(0.0005))
	result := env.Submit(transfer)
	mtesting.RequireTxFail(t, result, tx.TecINSUFFICIENT_PAYMENT)

	owner, _ := env.UniqueOwner(5)
	require.Equal(t, alice.ID, owner)
}

// Listing IDs grow monotonically and are never reused, even after
// cancellations.
func TestListingIDsNeverReused(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	env.Fund(alice)

	env.MintDivisible(alice, 7, 100)
	env.ApproveMarketplace(alice)

	ref := types.AssetRef{Kind: types.Divisible, ID: 7}

	result := env.Submit(marketplace.NewListingCreate(alice.Address, ref, 10, amount.FromDecimal(0.01)))
	mtesting.RequireTxSuccess(t, result)
	first := result.Output["ListingID"].(uint64)

	mtesting.RequireTxSuccess(t, env.Submit(marketplace.NewListingCancel(alice.Address, types.ListingID(first))))

	result = env.Submit(marketplace.NewListingCreate(alice.Address, ref, 10, amount.FromDecimal(0.01)))
	mtesting.RequireTxSuccess(t, result)
	second := result.Output["ListingID"].(uint64)

	require.Equal(t, first+1, second)

	// The cancelled record is still readable.
	l, ok := env.Listing(types.ListingID(first))
	require.True(t, ok)
	require.False(t, l.Active)

	active := env.ActiveListings()
	require.Len(t, active, 1)
	require.Equal(t, types.ListingID(second), active[0].ID)
}

// A buyer's receive hook cannot re-enter settlement, and a refusing hook
// rolls the whole purchase back.
func TestReceiveHookBehavior(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "")
	env.ApproveMarketplace(alice)

	result := env.Submit(marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Unique, ID: 5}, 1, amount.FromDecimal(1)))
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	refuse := true
	env.Hooks().Register(bob.ID, func(ref types.AssetRef, from, to types.AccountID, quantity uint64) error {
		if refuse {
			return errHookRefused
		}
		return nil
	})

	bobBefore := env.Balance(bob)
	aliceBefore := env.Balance(alice)

	result = env.Submit(marketplace.NewPurchase(bob.Address, listingID, 1, amount.FromDecimal(1)))
	mtesting.RequireTxFail(t, result, tx.TecRECIPIENT_REFUSED)

	// Full rollback: listing still active, asset unmoved, balances intact.
	l, _ := env.Listing(listingID)
	require.True(t, l.Active)
	owner, _ := env.UniqueOwner(5)
	require.Equal(t, alice.ID, owner)
	mtesting.RequireBalance(t, env, bob, bobBefore)
	mtesting.RequireBalance(t, env, alice, aliceBefore)

	refuse = false
	mtesting.RequireTxSuccess(t, env.Submit(marketplace.NewPurchase(bob.Address, listingID, 1, amount.FromDecimal(1))))
	owner, _ = env.UniqueOwner(5)
	require.Equal(t, bob.ID, owner)
}

// A hook that calls back into the engine during settlement is refused with
// tecREENTRANCY; the outer unit of work completes and the engine keeps
// accepting submissions afterwards.
func TestHookReenteringEngineIsRefused(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.MintUnique(alice, 5, "")
	env.ApproveMarketplace(alice)

	result := env.Submit(marketplace.NewListingCreate(alice.Address, types.AssetRef{Kind: types.Unique, ID: 5}, 1, amount.FromDecimal(1)))
	mtesting.RequireTxSuccess(t, result)
	listingID := types.ListingID(result.Output["ListingID"].(uint64))

	var inner tx.ApplyResult
	env.Hooks().Register(bob.ID, func(ref types.AssetRef, from, to types.AccountID, quantity uint64) error {
		inner = env.Engine().Submit(marketplace.NewPurchase(bob.Address, listingID, 1, amount.FromDecimal(1)))
		return nil
	})

	done := make(chan tx.ApplyResult, 1)
	go func() {
		done <- env.Submit(marketplace.NewPurchase(bob.Address, listingID, 1, amount.FromDecimal(1)))
	}()
	select {
	case result = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("purchase did not return; re-entering submission blocked the unit of work")
	}

	mtesting.RequireTxSuccess(t, result)
	require.Equal(t, tx.TecREENTRANCY, inner.Result)
	require.False(t, inner.Applied)

	// The outer purchase settled and the ledger still takes work.
	owner, _ := env.UniqueOwner(5)
	require.Equal(t, bob.ID, owner)
	mtesting.RequireTxSuccess(t, env.Submit(marketplace.NewPayment(bob.Address, alice.Address, amount.FromDecimal(0.1))))
}

// Sequence numbers protect against replay: an already-used sequence is
// refused, as is one from the future.
func TestSequenceReplayProtection(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	seq := env.Seq(alice)
	p := marketplace.NewPayment(alice.Address, bob.Address, amount.FromDecimal(1))
	p.SetSequence(seq)
	mtesting.RequireTxSuccess(t, env.Submit(p))

	replay := marketplace.NewPayment(alice.Address, bob.Address, amount.FromDecimal(1))
	replay.SetSequence(seq)
	mtesting.RequireTxFail(t, env.Submit(replay), tx.TefPAST_SEQ)

	future := marketplace.NewPayment(alice.Address, bob.Address, amount.FromDecimal(1))
	future.SetSequence(seq + 5)
	mtesting.RequireTxFail(t, env.Submit(future), tx.TerPRE_SEQ)
}

// A signed submission verifies end to end; tampering with the payload after
// signing is refused.
func TestSignedSubmission(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	alice := mtesting.NewAccount("alice")
	bob := mtesting.NewAccount("bob")
	env.Fund(alice, bob)

	p := marketplace.NewPayment(alice.Address, bob.Address, amount.FromDecimal(1))
	mtesting.RequireTxSuccess(t, env.SubmitSigned(p, alice))

	// Bob cannot sign for alice.
	forged := marketplace.NewPayment(alice.Address, bob.Address, amount.FromDecimal(1))
	result := env.SubmitSigned(forged, bob)
	mtesting.RequireTxFail(t, result, tx.TemBAD_SRC_ACCOUNT)
}

// Submissions from unknown accounts are refused before anything runs.
func TestUnknownAccountRefused(t *testing.T) {
	env := mtesting.NewTestEnv(t)

	ghost := mtesting.NewAccount("ghost")
	funded := mtesting.NewAccount("funded")
	env.Fund(funded)

	p := marketplace.NewPayment(ghost.Address, funded.Address, amount.FromDecimal(1))
	p.SetSequence(0)
	mtesting.RequireTxFail(t, env.Submit(p), tx.TerNO_ACCOUNT)
}

var errHookRefused = errors.New("hook refused receipt")

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/types"
)

func account(b byte) types.AccountID {
	var id types.AccountID
	id[0] = b
	return id
}

func TestStateTableIsolation(t *testing.T) {
	state := NewState()
	state.accounts[account(1)] = &AccountEntry{ID: account(1), Balance: amount.New(100)}

	table := NewStateTable(state)
	acct, ok := table.Account(account(1))
	require.True(t, ok)
	acct.Balance = amount.New(40)

	// Base state must be untouched until Apply.
	base, _ := state.Account(account(1))
	assert.Equal(t, amount.New(100), base.Balance)

	table.Apply()
	base, _ = state.Account(account(1))
	assert.Equal(t, amount.New(40), base.Balance)
}

func TestStateTableDiscard(t *testing.T) {
	state := NewState()
	state.accounts[account(1)] = &AccountEntry{ID: account(1), Balance: amount.New(100)}

	table := NewStateTable(state)
	acct, _ := table.Account(account(1))
	acct.Balance = amount.New(0)
	table.CreateAccount(account(2)).Balance = amount.New(55)
	table.AppendListing(&Listing{Seller: account(1), Quantity: 1, PricePerUnit: amount.New(1), Active: true})

	// Dropping the table without Apply leaves no trace.
	base, _ := state.Account(account(1))
	assert.Equal(t, amount.New(100), base.Balance)
	_, ok := state.Account(account(2))
	assert.False(t, ok)
	assert.Equal(t, 0, state.ListingCount())
	assert.Equal(t, types.ListingID(1), state.NextListingID())
}

func TestListingArenaMonotonicIDs(t *testing.T) {
	state := NewState()

	table := NewStateTable(state)
	id1 := table.AppendListing(&Listing{Seller: account(1), Quantity: 1, PricePerUnit: amount.New(1), Active: true})
	id2 := table.AppendListing(&Listing{Seller: account(1), Quantity: 2, PricePerUnit: amount.New(2), Active: true})
	table.Apply()

	assert.Equal(t, types.ListingID(1), id1)
	assert.Equal(t, types.ListingID(2), id2)
	assert.Equal(t, types.ListingID(3), state.NextListingID())

	// IDs keep increasing across units of work, never reused.
	table = NewStateTable(state)
	id3 := table.AppendListing(&Listing{Seller: account(1), Quantity: 3, PricePerUnit: amount.New(3), Active: true})
	table.Apply()
	assert.Equal(t, types.ListingID(3), id3)

	var seen []types.ListingID
	state.ForEachListing(func(l Listing) bool {
		seen = append(seen, l.ID)
		return true
	})
	assert.Equal(t, []types.ListingID{1, 2, 3}, seen)
}

func TestDivisibleCloneIsDeep(t *testing.T) {
	state := NewState()
	state.divisible[7] = &DivisibleAssetEntry{
		ID:       7,
		Supply:   10,
		Balances: map[types.AccountID]uint64{account(1): 10},
	}

	table := NewStateTable(state)
	e, ok := table.DivisibleAsset(7)
	require.True(t, ok)
	e.Balances[account(1)] = 4
	e.Balances[account(2)] = 6

	base, _ := state.DivisibleAsset(7)
	assert.Equal(t, uint64(10), base.Balances[account(1)])
	_, moved := base.Balances[account(2)]
	assert.False(t, moved)
}

func TestApprovalCommit(t *testing.T) {
	state := NewState()

	table := NewStateTable(state)
	table.SetOperatorApproval(account(1), account(9), true)
	assert.True(t, table.OperatorApproved(account(1), account(9)))
	assert.False(t, state.OperatorApproved(account(1), account(9)))
	table.Apply()
	assert.True(t, state.OperatorApproved(account(1), account(9)))

	// Revocation deletes the entry on commit.
	table = NewStateTable(state)
	table.SetOperatorApproval(account(1), account(9), false)
	table.Apply()
	assert.False(t, state.OperatorApproved(account(1), account(9)))
}

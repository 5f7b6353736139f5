package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

func balance(t *testing.T, v ledger.View, id types.AccountID) amount.Amount {
	t.Helper()
	e, ok := v.Account(id)
	if !ok {
		return 0
	}
	return e.Balance
}

func listUnique(t *testing.T, v ledger.View, m *Market, seller types.AccountID, assetID types.AssetID, price amount.Amount) types.ListingID {
	t.Helper()
	require.NoError(t, asset.MintUnique(v, assetID, seller, ""))
	v.SetOperatorApproval(seller, marketplace, true)
	ref := types.AssetRef{Kind: types.Unique, ID: assetID}
	id, err := m.Registry.Create(v, seller, ref, 1, price, 1)
	require.NoError(t, err)
	return id
}

func TestPurchaseUniqueExactPayment(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(1000))

	id := listUnique(t, v, m, seller, 7, amount.New(600))

	total, err := m.Settlement.Purchase(v, buyer, id, 1, amount.New(600))
	require.NoError(t, err)
	assert.Equal(t, amount.New(600), total)

	e, ok := v.UniqueAsset(7)
	require.True(t, ok)
	assert.Equal(t, buyer, e.Owner)

	assert.Equal(t, amount.New(400), balance(t, v, buyer))
	assert.Equal(t, amount.New(600), balance(t, v, seller))

	l, ok := v.Listing(id)
	require.True(t, ok)
	assert.False(t, l.Active)
	assert.Equal(t, uint64(0), l.Quantity)
}

func TestPurchaseRefundsOverpayment(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(1000))

	id := listUnique(t, v, m, seller, 7, amount.New(600))

	total, err := m.Settlement.Purchase(v, buyer, id, 1, amount.New(900))
	require.NoError(t, err)
	assert.Equal(t, amount.New(600), total)

	// Buyer pays exactly the total; the excess comes straight back.
	assert.Equal(t, amount.New(400), balance(t, v, buyer))
	assert.Equal(t, amount.New(600), balance(t, v, seller))
}

func TestPartialFills(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(10_000))

	require.NoError(t, asset.MintDivisible(v, 9, seller, 1000, ""))
	v.SetOperatorApproval(seller, marketplace, true)
	ref := types.AssetRef{Kind: types.Divisible, ID: 9}
	id, err := m.Registry.Create(v, seller, ref, 100, amount.New(10), 1)
	require.NoError(t, err)

	total, err := m.Settlement.Purchase(v, buyer, id, 30, amount.New(300))
	require.NoError(t, err)
	assert.Equal(t, amount.New(300), total)

	l, ok := v.Listing(id)
	require.True(t, ok)
	assert.True(t, l.Active)
	assert.Equal(t, uint64(70), l.Quantity)

	// Asking for more than what remains fails.
	_, err = m.Settlement.Purchase(v, buyer, id, 71, amount.New(710))
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	// Draining the remainder deactivates the listing.
	total, err = m.Settlement.Purchase(v, buyer, id, 70, amount.New(700))
	require.NoError(t, err)
	assert.Equal(t, amount.New(700), total)

	l, ok = v.Listing(id)
	require.True(t, ok)
	assert.False(t, l.Active)
	assert.Equal(t, uint64(0), l.Quantity)

	qty, err := m.Adapter.HolderQuantity(v, ref, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), qty)

	assert.Equal(t, amount.New(9000), balance(t, v, buyer))
	assert.Equal(t, amount.New(1000), balance(t, v, seller))
}

func TestPurchaseRejections(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, buyer, pauper := account(1), account(2), account(3)
	fund(v, buyer, amount.New(1000))
	fund(v, pauper, amount.New(10))

	id := listUnique(t, v, m, seller, 7, amount.New(600))

	_, err := m.Settlement.Purchase(v, buyer, 42, 1, amount.New(600))
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = m.Settlement.Purchase(v, buyer, id, 0, amount.New(600))
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = m.Settlement.Purchase(v, buyer, id, 1, amount.New(599))
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	_, err = m.Settlement.Purchase(v, pauper, id, 1, amount.New(600))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	require.NoError(t, m.Registry.Cancel(v, seller, id))
	_, err = m.Settlement.Purchase(v, buyer, id, 1, amount.New(600))
	assert.ErrorIs(t, err, ErrListingInactive)
}

func TestPurchaseOverflowRejected(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(1000))

	require.NoError(t, asset.MintDivisible(v, 9, seller, 1<<40, ""))
	v.SetOperatorApproval(seller, marketplace, true)
	ref := types.AssetRef{Kind: types.Divisible, ID: 9}
	id, err := m.Registry.Create(v, seller, ref, 1<<40, amount.New(1<<40), 1)
	require.NoError(t, err)

	_, err = m.Settlement.Purchase(v, buyer, id, 1<<40, amount.New(1000))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestReentrantPurchaseRejected(t *testing.T) {
	v := newView()
	hooks := asset.NewHookSet()
	m := NewMarket(marketplace, hooks)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(2000))

	id := listUnique(t, v, m, seller, 7, amount.New(600))

	// The buyer's receive hook tries to settle the same listing again
	// mid-transfer. The guard must refuse the inner call.
	var inner error
	hooks.Register(buyer, func(ref types.AssetRef, from, to types.AccountID, quantity uint64) error {
		_, inner = m.Settlement.Purchase(v, buyer, id, 1, amount.New(600))
		return nil
	})

	total, err := m.Settlement.Purchase(v, buyer, id, 1, amount.New(600))
	require.NoError(t, err)
	assert.Equal(t, amount.New(600), total)
	assert.ErrorIs(t, inner, ErrReentrancy)

	// The outer purchase settled exactly once.
	assert.Equal(t, amount.New(1400), balance(t, v, buyer))
	assert.Equal(t, amount.New(600), balance(t, v, seller))
}

func TestHookRefusalSurfacesError(t *testing.T) {
	v := newView()
	hooks := asset.NewHookSet()
	m := NewMarket(marketplace, hooks)
	seller, buyer := account(1), account(2)
	fund(v, buyer, amount.New(1000))

	id := listUnique(t, v, m, seller, 7, amount.New(600))

	hooks.Register(buyer, func(ref types.AssetRef, from, to types.AccountID, quantity uint64) error {
		return errors.New("not accepting deliveries")
	})

	_, err := m.Settlement.Purchase(v, buyer, id, 1, amount.New(600))
	assert.ErrorIs(t, err, asset.ErrRecipientRefused)
}

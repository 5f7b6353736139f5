package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/asset"
	"github.com/nvalette/marketd/internal/core/ledger"
	"github.com/nvalette/marketd/internal/core/types"
)

func account(b byte) types.AccountID {
	var id types.AccountID
	id[0] = b
	return id
}

var marketplace = account(0xFF)

func newView() *ledger.StateTable {
	return ledger.NewStateTable(ledger.NewState())
}

func fund(v ledger.View, id types.AccountID, balance amount.Amount) {
	v.CreateAccount(id).Balance = balance
}

func TestCreateUniqueListing(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller := account(1)

	require.NoError(t, asset.MintUnique(v, 7, seller, ""))
	v.SetOperatorApproval(seller, marketplace, true)

	ref := types.AssetRef{Kind: types.Unique, ID: 7}
	id, err := m.Registry.Create(v, seller, ref, 1, amount.New(500), 1)
	require.NoError(t, err)
	assert.Equal(t, types.ListingID(1), id)

	l, ok := v.Listing(id)
	require.True(t, ok)
	assert.True(t, l.Active)
	assert.Equal(t, seller, l.Seller)
	assert.Equal(t, uint64(1), l.Quantity)
	assert.Equal(t, amount.New(500), l.PricePerUnit)
}

func TestCreateRejectsBadInputs(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller := account(1)

	require.NoError(t, asset.MintUnique(v, 7, seller, ""))
	require.NoError(t, asset.MintDivisible(v, 9, seller, 1000, ""))
	v.SetOperatorApproval(seller, marketplace, true)

	unique := types.AssetRef{Kind: types.Unique, ID: 7}
	divisible := types.AssetRef{Kind: types.Divisible, ID: 9}

	_, err := m.Registry.Create(v, seller, unique, 1, 0, 1)
	assert.ErrorIs(t, err, ErrBadPrice)
	_, err = m.Registry.Create(v, seller, unique, 1, amount.New(-5), 1)
	assert.ErrorIs(t, err, ErrBadPrice)
	_, err = m.Registry.Create(v, seller, divisible, 0, amount.New(10), 1)
	assert.ErrorIs(t, err, ErrBadQuantity)

	// A unique asset can only be listed as a single unit.
	_, err = m.Registry.Create(v, seller, unique, 2, amount.New(10), 1)
	assert.ErrorIs(t, err, ErrBadQuantity)

	// Cannot list more than the seller holds.
	_, err = m.Registry.Create(v, seller, divisible, 1001, amount.New(10), 1)
	assert.ErrorIs(t, err, asset.ErrNotHeld)

	_, err = m.Registry.Create(v, seller, types.AssetRef{Kind: types.Unique, ID: 99}, 1, amount.New(10), 1)
	assert.ErrorIs(t, err, asset.ErrAssetNotFound)
}

func TestCreateRequiresMarketplaceApproval(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller := account(1)

	require.NoError(t, asset.MintUnique(v, 7, seller, ""))

	ref := types.AssetRef{Kind: types.Unique, ID: 7}
	_, err := m.Registry.Create(v, seller, ref, 1, amount.New(500), 1)
	assert.ErrorIs(t, err, ErrNotApproved)

	// A per-asset approval on the marketplace is enough for a unique asset.
	require.NoError(t, asset.ApproveUnique(v, 7, marketplace))
	_, err = m.Registry.Create(v, seller, ref, 1, amount.New(500), 1)
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller, stranger := account(1), account(2)

	require.NoError(t, asset.MintDivisible(v, 9, seller, 1000, ""))
	v.SetOperatorApproval(seller, marketplace, true)

	ref := types.AssetRef{Kind: types.Divisible, ID: 9}
	id, err := m.Registry.Create(v, seller, ref, 100, amount.New(10), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Registry.Cancel(v, stranger, id), ErrNotSeller)
	assert.ErrorIs(t, m.Registry.Cancel(v, seller, 42), ErrListingNotFound)

	require.NoError(t, m.Registry.Cancel(v, seller, id))
	l, ok := v.Listing(id)
	require.True(t, ok)
	assert.False(t, l.Active)
	// The record survives; it only stops being settleable.
	assert.Equal(t, uint64(100), l.Quantity)

	assert.ErrorIs(t, m.Registry.Cancel(v, seller, id), ErrListingInactive)

	// A stranger is refused before the active state is consulted.
	assert.ErrorIs(t, m.Registry.Cancel(v, stranger, id), ErrNotSeller)
}

func TestActiveEnumeration(t *testing.T) {
	v := newView()
	m := NewMarket(marketplace, nil)
	seller := account(1)

	require.NoError(t, asset.MintDivisible(v, 9, seller, 1000, ""))
	v.SetOperatorApproval(seller, marketplace, true)

	ref := types.AssetRef{Kind: types.Divisible, ID: 9}
	first, err := m.Registry.Create(v, seller, ref, 10, amount.New(1), 1)
	require.NoError(t, err)
	second, err := m.Registry.Create(v, seller, ref, 20, amount.New(2), 2)
	require.NoError(t, err)
	third, err := m.Registry.Create(v, seller, ref, 30, amount.New(3), 3)
	require.NoError(t, err)

	// IDs are monotonic and never reused.
	assert.Equal(t, types.ListingID(1), first)
	assert.Equal(t, types.ListingID(2), second)
	assert.Equal(t, types.ListingID(3), third)

	require.NoError(t, m.Registry.Cancel(v, seller, second))

	active := m.Registry.Active(v)
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0].ID)
	assert.Equal(t, third, active[1].ID)
}

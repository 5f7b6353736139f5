package marketplace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvalette/marketd/internal/core/amount"
	"github.com/nvalette/marketd/internal/core/types"
)

var (
	alice = types.AccountID{1}.String()
	bob   = types.AccountID{2}.String()
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.HasPrefix(err.Error(), code),
			"expected %s prefix, got %q", code, err.Error())
	}
}

func TestPaymentValidate(t *testing.T) {
	assert.NoError(t, NewPayment(alice, bob, amount.New(100)).Validate())

	assertCode(t, NewPayment(alice, "", amount.New(100)).Validate(), "temINVALID")
	assertCode(t, NewPayment(alice, "not-hex", amount.New(100)).Validate(), "temINVALID")
	assertCode(t, NewPayment(alice, alice, amount.New(100)).Validate(), "temSELF_TRANSFER")
	// A case-variant encoding of the source is still a self transfer.
	assertCode(t, NewPayment(alice, strings.ToUpper(alice), amount.New(100)).Validate(), "temSELF_TRANSFER")
	assertCode(t, NewPayment(alice, bob, 0).Validate(), "temBAD_AMOUNT")
	assertCode(t, NewPayment(alice, bob, amount.New(-5)).Validate(), "temBAD_AMOUNT")
}

func TestListingCreateValidate(t *testing.T) {
	unique := types.AssetRef{Kind: types.Unique, ID: 5}
	divisible := types.AssetRef{Kind: types.Divisible, ID: 7}

	assert.NoError(t, NewListingCreate(alice, unique, 1, amount.New(100)).Validate())
	assert.NoError(t, NewListingCreate(alice, divisible, 50, amount.New(1)).Validate())

	assertCode(t, NewListingCreate(alice, unique, 1, 0).Validate(), "temBAD_PRICE")
	assertCode(t, NewListingCreate(alice, unique, 2, amount.New(100)).Validate(), "temBAD_QUANTITY")
	assertCode(t, NewListingCreate(alice, divisible, 0, amount.New(100)).Validate(), "temBAD_QUANTITY")

	bad := NewListingCreate(alice, unique, 1, amount.New(100))
	bad.AssetKind = "liquid"
	assertCode(t, bad.Validate(), "temBAD_ASSET")
}

func TestAssetMintValidate(t *testing.T) {
	assert.NoError(t, NewAssetMint(alice, types.Unique, 5, 0).Validate())
	assert.NoError(t, NewAssetMint(alice, types.Divisible, 7, 1000).Validate())

	assertCode(t, NewAssetMint(alice, types.Divisible, 7, 0).Validate(), "temBAD_QUANTITY")
	assertCode(t, NewAssetMint(alice, types.Unique, 5, 10).Validate(), "temBAD_QUANTITY")
}

func TestDirectTransferValidate(t *testing.T) {
	assert.NoError(t, NewDirectTransfer(alice, bob, 5, amount.New(1000)).Validate())

	assertCode(t, NewDirectTransfer(alice, alice, 5, amount.New(1000)).Validate(), "temSELF_TRANSFER")
	// A case-variant encoding of the owner is still a self transfer.
	assertCode(t, NewDirectTransfer(alice, strings.ToUpper(alice), 5, amount.New(1000)).Validate(), "temSELF_TRANSFER")
	assertCode(t, NewDirectTransfer(alice, "", 5, amount.New(1000)).Validate(), "temINVALID")
	assertCode(t, NewDirectTransfer(alice, bob, 5, amount.New(-1)).Validate(), "temBAD_AMOUNT")

	// An operator transfer names the holder separately.
	op := NewDirectTransfer(bob, alice, 5, amount.New(1000))
	op.Owner = types.AccountID{3}.String()
	assert.NoError(t, op.Validate())

	op = NewDirectTransfer(alice, strings.ToUpper(bob), 5, amount.New(1000))
	op.Owner = bob
	assertCode(t, op.Validate(), "temSELF_TRANSFER")
}

func TestFeeSetValidate(t *testing.T) {
	assert.NoError(t, NewFeeSet(alice, 0).Validate())
	assert.NoError(t, NewFeeSet(alice, amount.New(500)).Validate())
	assertCode(t, NewFeeSet(alice, amount.New(-1)).Validate(), "temBAD_FEE")
}

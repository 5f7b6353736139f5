package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultFamilies(t *testing.T) {
	assert.True(t, TesSUCCESS.IsSuccess())
	assert.True(t, TesSUCCESS.IsApplied())

	assert.True(t, TecINSUFFICIENT_FUNDS.IsTec())
	// Failing codes never touch the ledger.
	assert.False(t, TecINSUFFICIENT_FUNDS.IsApplied())

	assert.True(t, TefPAST_SEQ.IsTef())
	assert.True(t, TemBAD_PRICE.IsTem())
	assert.True(t, TerPRE_SEQ.IsTer())
	assert.True(t, TerPRE_SEQ.ShouldRetry())
	assert.False(t, TecREENTRANCY.ShouldRetry())
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "tesSUCCESS", TesSUCCESS.String())
	assert.Equal(t, "tecINACTIVE_LISTING", TecINACTIVE_LISTING.String())
	assert.Equal(t, "temBAD_PRICE", TemBAD_PRICE.String())
	assert.Equal(t, "Unknown(42)", Result(42).String())
	assert.NotEmpty(t, TecRECIPIENT_REFUSED.Message())
}

func TestResultFromValidationError(t *testing.T) {
	cases := map[string]Result{
		"temBAD_PRICE: PricePerUnit must be positive": TemBAD_PRICE,
		"temBAD_QUANTITY":                  TemBAD_QUANTITY,
		"temSELF_TRANSFER something":      TemSELF_TRANSFER,
		"temBAD_PRICEY: not a real code":  TemINVALID,
		"some unprefixed validation error": TemINVALID,
	}
	for msg, want := range cases {
		assert.Equal(t, want, resultFromValidationError(errors.New(msg)), msg)
	}
}

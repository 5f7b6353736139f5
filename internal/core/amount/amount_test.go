package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, Amount(1_000_000), FromDecimal(1.0))
	assert.Equal(t, Amount(10_000), FromDecimal(0.01))
	assert.Equal(t, Amount(1_000), FromDecimal(0.001))
	assert.Equal(t, Amount(0), FromDecimal(0))
}

func TestArithmetic(t *testing.T) {
	a := New(1500)
	b := New(500)
	assert.Equal(t, New(2000), a.Add(b))
	assert.Equal(t, New(1000), a.Sub(b))
	assert.True(t, a.IsPositive())
	assert.False(t, a.IsZero())
	assert.True(t, New(-1).IsNegative())
}

func TestMulQuantity(t *testing.T) {
	total, ok := New(10_000).MulQuantity(4)
	require.True(t, ok)
	assert.Equal(t, New(40_000), total)

	total, ok = New(25).MulQuantity(0)
	require.True(t, ok)
	assert.True(t, total.IsZero())

	// Overflow must be reported, never wrapped.
	_, ok = New(math.MaxInt64).MulQuantity(2)
	assert.False(t, ok)

	_, ok = New(2).MulQuantity(math.MaxUint64)
	assert.False(t, ok)

	_, ok = New(-1).MulQuantity(3)
	assert.False(t, ok)
}

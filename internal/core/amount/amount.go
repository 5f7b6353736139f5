package amount

import (
	"fmt"
	"math"
)

// Amount is a quantity of native currency in base units.
type Amount int64

// UnitsPerCoin is the number of base units in one coin.
const UnitsPerCoin Amount = 1_000_000

func New(units int64) Amount {
	return Amount(units)
}

// FromDecimal converts a decimal coin value to base units.
func FromDecimal(coins float64) Amount {
	return Amount(coins * float64(UnitsPerCoin))
}

func (a Amount) Units() int64 {
	return int64(a)
}

func (a Amount) Decimal() float64 {
	return float64(a) / float64(UnitsPerCoin)
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

func (a Amount) Sub(other Amount) Amount {
	return a - other
}

// MulQuantity multiplies a per-unit amount by a quantity using exact
// integer arithmetic. The second return value is false on overflow or
// when the result would not fit in an Amount.
func (a Amount) MulQuantity(quantity uint64) (Amount, bool) {
	if a < 0 {
		return 0, false
	}
	if a == 0 || quantity == 0 {
		return 0, true
	}
	if quantity > math.MaxInt64 {
		return 0, false
	}
	if int64(a) > math.MaxInt64/int64(quantity) {
		return 0, false
	}
	return a * Amount(quantity), true
}

func (a Amount) IsPositive() bool {
	return a > 0
}

func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) IsZero() bool {
	return a == 0
}

func (a Amount) String() string {
	return fmt.Sprintf("%d", int64(a))
}

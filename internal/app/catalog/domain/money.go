package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Storing the value as a rational number avoids floating-point drift when the
// same price is folded through several discounts and back.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents 2499.00.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// NewMoneyFromInt64 creates a whole-unit Money value.
func NewMoneyFromInt64(v int64) *Money {
	return &Money{rat: big.NewRat(v, 1)}
}

// NewMoneyFromFloat64 creates a Money value from a float, as received on the
// wire. The conversion is exact for the float's binary representation.
func NewMoneyFromFloat64(v float64) (*Money, error) {
	rat := new(big.Rat).SetFloat64(v)
	if rat == nil {
		return nil, fmt.Errorf("value is not finite: %v", v)
	}
	return &Money{rat: rat}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Zero returns a zero Money value.
func Zero() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// Numerator returns the numerator of the rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// IsSafeForStorage reports whether both numerator and denominator fit in
// int64 columns. big.Rat keeps values in lowest terms, so this only fails
// after extreme compounding.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyByInt64 multiplies this Money value by an integer quantity.
func (m *Money) MultiplyByInt64(n int64) *Money {
	return m.MultiplyByRat(big.NewRat(n, 1))
}

// DivideByRat divides this Money value by a rational number.
func (m *Money) DivideByRat(rat *big.Rat) (*Money, error) {
	if rat.Sign() == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	return &Money{rat: new(big.Rat).Quo(m.rat, rat)}, nil
}

// RoundNearest rounds to the nearest whole unit, halves away from zero.
func (m *Money) RoundNearest() *Money {
	num := new(big.Rat).Set(m.rat)
	half := big.NewRat(1, 2)
	if num.Sign() >= 0 {
		num.Add(num, half)
	} else {
		num.Sub(num, half)
	}
	floored := new(big.Int).Quo(num.Num(), num.Denom())
	return &Money{rat: new(big.Rat).SetInt(floored)}
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// MarshalJSON encodes the value as its two-decimal string form. Event
// payloads are for human and downstream consumption, not round-tripping.
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

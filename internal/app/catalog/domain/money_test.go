package domain

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, num, denom int64) *Money {
	t.Helper()
	m, err := NewMoney(num, denom)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("creates value from numerator and denominator", func(t *testing.T) {
		m, err := NewMoney(249900, 100) // 2499.00
		require.NoError(t, err)
		assert.Equal(t, "2499.00", m.String())
	})

	t.Run("rejects zero denominator", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("normalizes to lowest terms", func(t *testing.T) {
		m := mustMoney(t, 5000, 100) // 50.00
		assert.Equal(t, int64(50), m.Numerator())
		assert.Equal(t, int64(1), m.Denominator())
	})
}

func TestNewMoneyFromFloat64(t *testing.T) {
	t.Run("converts wire floats", func(t *testing.T) {
		m, err := NewMoneyFromFloat64(19.99)
		require.NoError(t, err)
		assert.Equal(t, "19.99", m.String())
	})

	t.Run("rejects NaN", func(t *testing.T) {
		_, err := NewMoneyFromFloat64(math.NaN())
		assert.Error(t, err)
	})

	t.Run("rejects infinity", func(t *testing.T) {
		_, err := NewMoneyFromFloat64(math.Inf(1))
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a := mustMoney(t, 1050, 100) // 10.50
		b := mustMoney(t, 250, 100)  // 2.50
		assert.Equal(t, "13.00", a.Add(b).String())
	})

	t.Run("subtract", func(t *testing.T) {
		a := mustMoney(t, 1050, 100)
		b := mustMoney(t, 250, 100)
		assert.Equal(t, "8.00", a.Subtract(b).String())
	})

	t.Run("subtract below zero goes negative", func(t *testing.T) {
		a := mustMoney(t, 100, 100)
		b := mustMoney(t, 500, 100)
		result := a.Subtract(b)
		assert.True(t, result.IsNegative())
		assert.Equal(t, "-4.00", result.String())
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		unit := mustMoney(t, 333, 100) // 3.33
		assert.Equal(t, "9.99", unit.MultiplyByInt64(3).String())
	})

	t.Run("multiply by rat keeps exactness", func(t *testing.T) {
		price := NewMoneyFromInt64(100)
		third := price.MultiplyByRat(big.NewRat(1, 3))
		back := third.MultiplyByRat(big.NewRat(3, 1))
		assert.True(t, back.Equals(price))
	})

	t.Run("divide by rat", func(t *testing.T) {
		price := NewMoneyFromInt64(90)
		result, err := price.DivideByRat(big.NewRat(90, 100))
		require.NoError(t, err)
		assert.Equal(t, "100.00", result.String())
	})

	t.Run("divide by zero fails", func(t *testing.T) {
		price := NewMoneyFromInt64(90)
		_, err := price.DivideByRat(big.NewRat(0, 1))
		assert.Error(t, err)
	})
}

func TestMoneyRoundNearest(t *testing.T) {
	cases := []struct {
		name string
		num  int64
		den  int64
		want string
	}{
		{"rounds down below half", 1049, 100, "10.00"},
		{"half rounds away from zero", 1050, 100, "11.00"},
		{"rounds up above half", 1051, 100, "11.00"},
		{"whole value unchanged", 1000, 100, "10.00"},
		{"negative half rounds away from zero", -1050, 100, "-11.00"},
		{"negative below half rounds toward zero", -1049, 100, "-10.00"},
		{"zero stays zero", 0, 100, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mustMoney(t, tc.num, tc.den)
			assert.Equal(t, tc.want, m.RoundNearest().String())
		})
	}
}

func TestMoneyComparisons(t *testing.T) {
	small := mustMoney(t, 500, 100)
	large := mustMoney(t, 1000, 100)

	assert.True(t, small.LessThan(large))
	assert.True(t, large.GreaterThan(small))
	assert.True(t, small.Equals(mustMoney(t, 5, 1)))
	assert.False(t, small.Equals(large))
	assert.True(t, Zero().IsZero())
	assert.True(t, large.IsPositive())
	assert.True(t, Zero().Subtract(small).IsNegative())
}

func TestMoneyIsSafeForStorage(t *testing.T) {
	t.Run("ordinary values are safe", func(t *testing.T) {
		m := mustMoney(t, 249900, 100)
		assert.True(t, m.IsSafeForStorage())
	})

	t.Run("compounded value past int64 is unsafe", func(t *testing.T) {
		m := NewMoneyFromInt64(1 << 62)
		for i := 0; i < 4; i++ {
			m = m.MultiplyByInt64(1 << 62)
		}
		assert.False(t, m.IsSafeForStorage())
	})
}

func TestMoneyCopy(t *testing.T) {
	original := mustMoney(t, 1000, 100)
	copied := original.Copy()

	modified := copied.Add(NewMoneyFromInt64(5))
	assert.Equal(t, "10.00", original.String())
	assert.Equal(t, "15.00", modified.String())
}

func TestMoneyMarshalJSON(t *testing.T) {
	m := mustMoney(t, 249950, 100)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2499.50"`, string(data))
}

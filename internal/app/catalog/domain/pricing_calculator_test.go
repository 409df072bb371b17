package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	weekAgo   = testNow.AddDate(0, 0, -7)
	weekAhead = testNow.AddDate(0, 0, 7)
)

func activeDiscount(t *testing.T, dtype DiscountType, value *Money) *Discount {
	t.Helper()
	d, err := NewDiscount("d-1", "seller-1", ProductTarget("p-1"), dtype, value, weekAgo, weekAhead, testNow)
	require.NoError(t, err)
	return d
}

func TestApplyDiscount(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("percentage", func(t *testing.T) {
		price := NewMoneyFromInt64(200)
		result := pc.ApplyDiscount(price, DiscountPercentage, NewMoneyFromInt64(10))
		assert.Equal(t, "180.00", result.String())
	})

	t.Run("fixed", func(t *testing.T) {
		price := NewMoneyFromInt64(200)
		result := pc.ApplyDiscount(price, DiscountFixed, NewMoneyFromInt64(25))
		assert.Equal(t, "175.00", result.String())
	})

	t.Run("unknown type passes price through", func(t *testing.T) {
		price := NewMoneyFromInt64(200)
		result := pc.ApplyDiscount(price, DiscountType("loyalty"), NewMoneyFromInt64(25))
		assert.True(t, result.Equals(price))
	})

	t.Run("fractional percentage stays exact", func(t *testing.T) {
		price := NewMoneyFromInt64(100)
		half := mustMoney(t, 25, 10) // 2.5%
		result := pc.ApplyDiscount(price, DiscountPercentage, half)
		assert.Equal(t, "97.50", result.String())
	})
}

func TestFinalPrice(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("folds discounts left to right", func(t *testing.T) {
		// 100 -> -10% = 90 -> -5 fixed = 85
		base := NewMoneyFromInt64(100)
		discounts := []*Discount{
			activeDiscount(t, DiscountPercentage, NewMoneyFromInt64(10)),
			activeDiscount(t, DiscountFixed, NewMoneyFromInt64(5)),
		}
		assert.Equal(t, "85.00", pc.FinalPrice(base, discounts, testNow).String())
	})

	t.Run("order matters", func(t *testing.T) {
		// 100 -> -5 fixed = 95 -> -10% = 85.50
		base := NewMoneyFromInt64(100)
		discounts := []*Discount{
			activeDiscount(t, DiscountFixed, NewMoneyFromInt64(5)),
			activeDiscount(t, DiscountPercentage, NewMoneyFromInt64(10)),
		}
		assert.Equal(t, "85.50", pc.FinalPrice(base, discounts, testNow).String())
	})

	t.Run("skips pending and expired windows", func(t *testing.T) {
		base := NewMoneyFromInt64(100)
		pending, err := NewDiscount("d-p", "seller-1", ProductTarget("p-1"), DiscountPercentage,
			NewMoneyFromInt64(50), weekAhead, weekAhead.AddDate(0, 0, 7), testNow)
		require.NoError(t, err)
		expired, err := NewDiscount("d-e", "seller-1", ProductTarget("p-1"), DiscountPercentage,
			NewMoneyFromInt64(50), weekAgo.AddDate(0, 0, -7), weekAgo, testNow)
		require.NoError(t, err)
		active := activeDiscount(t, DiscountPercentage, NewMoneyFromInt64(10))

		result := pc.FinalPrice(base, []*Discount{pending, active, expired}, testNow)
		assert.Equal(t, "90.00", result.String())
	})

	t.Run("no active discounts returns base copy", func(t *testing.T) {
		base := NewMoneyFromInt64(100)
		result := pc.FinalPrice(base, nil, testNow)
		assert.True(t, result.Equals(base))
	})

	t.Run("nil entries are skipped", func(t *testing.T) {
		base := NewMoneyFromInt64(100)
		result := pc.FinalPrice(base, []*Discount{nil, activeDiscount(t, DiscountFixed, NewMoneyFromInt64(5))}, testNow)
		assert.Equal(t, "95.00", result.String())
	})
}

func TestCompositePrice(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("lines are added after the discount fold", func(t *testing.T) {
		// base 100 -10% = 90, plus 2 * 20 = 130
		base := NewMoneyFromInt64(100)
		discounts := []*Discount{activeDiscount(t, DiscountPercentage, NewMoneyFromInt64(10))}
		lines := []PricedLine{{UnitPrice: NewMoneyFromInt64(20), Quantity: 2}}
		assert.Equal(t, "130.00", pc.CompositePrice(base, discounts, lines, testNow).String())
	})

	t.Run("nil line prices contribute nothing", func(t *testing.T) {
		base := NewMoneyFromInt64(100)
		lines := []PricedLine{{UnitPrice: nil, Quantity: 3}}
		assert.Equal(t, "100.00", pc.CompositePrice(base, nil, lines, testNow).String())
	})
}

func TestSellingPrice(t *testing.T) {
	pc := NewPricingCalculator()

	cases := []struct {
		name    string
		mrp     int64
		percent int64
		want    string
	}{
		{"no discount", 2499, 0, "2499.00"},
		{"ten percent", 2000, 10, "1800.00"},
		{"full discount", 500, 100, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := pc.SellingPrice(NewMoneyFromInt64(tc.mrp), tc.percent)
			assert.Equal(t, tc.want, result.String())
		})
	}
}

func TestAggregateMRP(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("sums price times quantity", func(t *testing.T) {
		lines := []BundleLine{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 1},
		}
		prices := map[string]*Money{
			"p-1": NewMoneyFromInt64(100),
			"p-2": NewMoneyFromInt64(50),
		}
		assert.Equal(t, "250.00", pc.AggregateMRP(lines, prices).String())
	})

	t.Run("missing member contributes zero", func(t *testing.T) {
		lines := []BundleLine{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "gone", Quantity: 5},
		}
		prices := map[string]*Money{"p-1": NewMoneyFromInt64(100)}
		assert.Equal(t, "200.00", pc.AggregateMRP(lines, prices).String())
	})

	t.Run("quantity below one counts as one", func(t *testing.T) {
		lines := []BundleLine{{ProductID: "p-1", Quantity: 0}}
		prices := map[string]*Money{"p-1": NewMoneyFromInt64(100)}
		assert.Equal(t, "100.00", pc.AggregateMRP(lines, prices).String())
	})

	t.Run("empty lines price at zero", func(t *testing.T) {
		assert.True(t, pc.AggregateMRP(nil, nil).IsZero())
	})
}

func TestApplySalePercent(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("discounts and rounds to the nearest unit", func(t *testing.T) {
		// 99.99 at 15% off keeps 84.9915, rounds to 85
		price := mustMoney(t, 9999, 100)
		assert.Equal(t, "85.00", pc.ApplySalePercent(price, 15).String())
	})

	t.Run("zero percent still rounds", func(t *testing.T) {
		price := mustMoney(t, 1050, 100) // 10.50
		assert.Equal(t, "11.00", pc.ApplySalePercent(price, 0).String())
	})

	t.Run("hundred percent prices at zero", func(t *testing.T) {
		assert.True(t, pc.ApplySalePercent(NewMoneyFromInt64(100), 100).IsZero())
	})
}

func TestReverseSalePercent(t *testing.T) {
	pc := NewPricingCalculator()

	t.Run("recovers the pre-sale price", func(t *testing.T) {
		discounted := NewMoneyFromInt64(90)
		original, err := pc.ReverseSalePercent(discounted, 10)
		require.NoError(t, err)
		assert.Equal(t, "100.00", original.String())
	})

	t.Run("round trip is lossy within one unit", func(t *testing.T) {
		original := mustMoney(t, 9999, 100) // 99.99
		discounted := pc.ApplySalePercent(original, 15)
		recovered, err := pc.ReverseSalePercent(discounted, 15)
		require.NoError(t, err)

		diff := recovered.Subtract(original)
		if diff.IsNegative() {
			diff = Zero().Subtract(diff)
		}
		assert.True(t, diff.LessThan(NewMoneyFromInt64(1)), "recovered %s, original %s", recovered, original)
	})

	t.Run("hundred percent cannot be reversed", func(t *testing.T) {
		_, err := pc.ReverseSalePercent(Zero(), 100)
		assert.Error(t, err)
	})
}

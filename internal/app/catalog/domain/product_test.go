package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	p, err := NewProduct("p-1", "seller-1", "Mechanical Keyboard", "Tactile switches",
		NewMoneyFromInt64(2000), 10, 5, "cat-1", testNow, clk)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("derives selling and final price", func(t *testing.T) {
		p := newTestProduct(t)
		assert.Equal(t, "1800.00", p.SellingPrice().String()) // 2000 - 10%
		assert.Equal(t, "1800.00", p.FinalPrice().String())   // no discounts attached yet
		assert.True(t, p.Eligible())
	})

	t.Run("records a created event", func(t *testing.T) {
		p := newTestProduct(t)
		require.Len(t, p.DomainEvents(), 1)
		assert.Equal(t, "product.created", p.DomainEvents()[0].EventType())
	})

	t.Run("validation order is fixed", func(t *testing.T) {
		clk := clock.NewMockClock(testNow)

		// empty name reported before the bad MRP
		_, err := NewProduct("p-1", "s-1", "  ", "d", Zero(), 200, -1, "", testNow, clk)
		assert.ErrorIs(t, err, ErrEmptyProductName)

		// bad MRP reported before the bad discount
		_, err = NewProduct("p-1", "s-1", "Name", "d", Zero(), 200, -1, "", testNow, clk)
		assert.ErrorIs(t, err, ErrInvalidMRP)

		// bad discount reported before the bad quantity
		_, err = NewProduct("p-1", "s-1", "Name", "d", NewMoneyFromInt64(10), 200, -1, "", testNow, clk)
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = NewProduct("p-1", "s-1", "Name", "d", NewMoneyFromInt64(10), 20, 0, "", testNow, clk)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestProductPriceDerivation(t *testing.T) {
	t.Run("SetMRP recomputes selling price", func(t *testing.T) {
		p := newTestProduct(t)
		require.NoError(t, p.SetMRP(NewMoneyFromInt64(1000)))
		assert.Equal(t, "900.00", p.SellingPrice().String())
		assert.True(t, p.Changes().Dirty(FieldSellingPrice))
	})

	t.Run("SetDiscountPercent recomputes selling price", func(t *testing.T) {
		p := newTestProduct(t)
		require.NoError(t, p.SetDiscountPercent(50))
		assert.Equal(t, "1000.00", p.SellingPrice().String())
	})

	t.Run("SetMRP rejects non-positive values", func(t *testing.T) {
		p := newTestProduct(t)
		assert.ErrorIs(t, p.SetMRP(Zero()), ErrInvalidMRP)
		assert.ErrorIs(t, p.SetMRP(nil), ErrInvalidMRP)
	})

	t.Run("RefoldFinalPrice applies only active discounts", func(t *testing.T) {
		p := newTestProduct(t) // selling 1800
		active := activeDiscount(t, DiscountFixed, NewMoneyFromInt64(300))
		p.AttachDiscount(active.ID())
		p.RefoldFinalPrice([]*Discount{active}, testNow)
		assert.Equal(t, "1500.00", p.FinalPrice().String())

		// after the window closes the fold restores the selling price
		p.RefoldFinalPrice([]*Discount{active}, weekAhead.AddDate(0, 0, 1))
		assert.Equal(t, "1800.00", p.FinalPrice().String())
	})
}

func TestProductDiscountAttachment(t *testing.T) {
	p := newTestProduct(t)

	p.AttachDiscount("d-1")
	p.AttachDiscount("d-2")
	p.AttachDiscount("d-1") // idempotent
	assert.Equal(t, []string{"d-1", "d-2"}, p.DiscountIDs())
	assert.True(t, p.HasDiscount("d-2"))

	assert.True(t, p.DetachDiscount("d-1"))
	assert.False(t, p.DetachDiscount("d-1"))
	assert.Equal(t, []string{"d-2"}, p.DiscountIDs())
}

func TestProductSaleDiscount(t *testing.T) {
	t.Run("apply rounds and records the percent", func(t *testing.T) {
		p := newTestProduct(t) // selling 1800
		p.ApplySaleDiscount(15)
		assert.Equal(t, "1530.00", p.SellingPrice().String())
		require.NotNil(t, p.AdminDiscount())
		assert.Equal(t, int64(15), *p.AdminDiscount())
	})

	t.Run("reverse restores the price and clears the percent", func(t *testing.T) {
		p := newTestProduct(t)
		p.ApplySaleDiscount(15)
		require.NoError(t, p.ReverseSaleDiscount(15))
		assert.Equal(t, "1800.00", p.SellingPrice().String())
		assert.Nil(t, p.AdminDiscount())
	})

	t.Run("hundred percent cannot be reversed", func(t *testing.T) {
		p := newTestProduct(t)
		p.ApplySaleDiscount(100)
		assert.Error(t, p.ReverseSaleDiscount(100))
	})
}

func TestProductSoftDelete(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.SoftDelete(testNow))
	assert.True(t, p.IsDeleted())
	assert.False(t, p.Eligible())
	assert.True(t, p.Changes().Dirty(FieldIsDeleted))

	assert.ErrorIs(t, p.SoftDelete(testNow), ErrProductDeleted)
}

func TestProductChangeTracking(t *testing.T) {
	p := newTestProduct(t)
	p.Changes().Clear()
	require.False(t, p.Changes().HasChanges())

	require.NoError(t, p.SetName("Renamed"))
	require.NoError(t, p.SetQuantity(9))
	p.MoveCategory("cat-2")

	assert.True(t, p.Changes().Dirty(FieldName))
	assert.True(t, p.Changes().Dirty(FieldQuantity))
	assert.True(t, p.Changes().Dirty(FieldCategoryID))
	assert.False(t, p.Changes().Dirty(FieldMRP))
}

func TestProductOwnership(t *testing.T) {
	p := newTestProduct(t)
	assert.True(t, p.OwnedBy("seller-1"))
	assert.False(t, p.OwnedBy("seller-2"))
}

func TestProductBundleRefs(t *testing.T) {
	p := newTestProduct(t)

	p.AddBundleRef("b-1")
	p.AddBundleRef("b-1")
	p.AddBundleRef("b-2")
	assert.Equal(t, []string{"b-1", "b-2"}, p.BundleIDs())

	p.RemoveBundleRef("b-1")
	assert.Equal(t, []string{"b-2"}, p.BundleIDs())
}

func TestProductTouchAdvancesUpdatedAt(t *testing.T) {
	clk := clock.NewMockClock(testNow)
	p, err := NewProduct("p-1", "seller-1", "Keyboard", "d",
		NewMoneyFromInt64(100), 0, 1, "", testNow, clk)
	require.NoError(t, err)

	later := testNow.Add(2 * time.Hour)
	clk.Set(later)
	require.NoError(t, p.SetQuantity(3))
	assert.Equal(t, later, p.UpdatedAt())
}

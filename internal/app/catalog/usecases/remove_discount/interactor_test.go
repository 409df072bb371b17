package remove_discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	discounts  *catalogtest.FakeDiscounts
	products   *catalogtest.FakeProducts
	bundles    *catalogtest.FakeBundles
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		discounts: catalogtest.NewFakeDiscounts(),
		products:  catalogtest.NewFakeProducts(),
		bundles:   catalogtest.NewFakeBundles(),
		committer: catalogtest.NewFakeCommitter(),
		clk:       clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.discounts, f.products, f.bundles, f.committer, f.clk)
	return f
}

func (f *fixture) seedDiscount(t *testing.T, target domain.Target) *domain.Discount {
	t.Helper()
	d, err := domain.NewDiscount("d-1", "seller-1", target,
		domain.DiscountPercentage, domain.NewMoneyFromInt64(10),
		testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7), testNow)
	require.NoError(t, err)
	f.discounts.Put(d)
	return d
}

func TestRemoveDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches from the product and restores its final price", func(t *testing.T) {
		f := setup(t)
		p, err := domain.NewProduct("p-1", "seller-1", "Keyboard", "d",
			domain.NewMoneyFromInt64(200), 0, 1, "", testNow, f.clk)
		require.NoError(t, err)
		f.products.Put(p)

		d := f.seedDiscount(t, domain.ProductTarget("p-1"))
		p.AttachDiscount("d-1")
		p.RefoldFinalPrice([]*domain.Discount{d}, testNow)
		require.Equal(t, "180.00", p.FinalPrice().String())

		err = f.interactor.Execute(ctx, &Request{CallerID: "seller-1", DiscountID: "d-1"})
		require.NoError(t, err)

		assert.Contains(t, f.discounts.Deleted, "d-1")
		assert.False(t, p.HasDiscount("d-1"))
		assert.Equal(t, "200.00", p.FinalPrice().String())
		// discount delete plus product update in one plan
		assert.Equal(t, 2, f.committer.LastPlan().Count())
	})

	t.Run("detaches from the bundle and restores its final price", func(t *testing.T) {
		f := setup(t)
		b, err := domain.NewBundle("b-1", "seller-1", "Kit", "d",
			[]domain.BundleLine{{ProductID: "p-1", Quantity: 1}}, 0,
			map[string]*domain.Money{"p-1": domain.NewMoneyFromInt64(200)},
			testNow, f.clk)
		require.NoError(t, err)
		f.bundles.Put(b)

		d := f.seedDiscount(t, domain.BundleTarget("b-1"))
		b.AttachDiscount("d-1")
		b.RefoldFinalPrice([]*domain.Discount{d}, testNow)
		require.Equal(t, "180.00", b.FinalPrice().String())

		err = f.interactor.Execute(ctx, &Request{CallerID: "seller-1", DiscountID: "d-1"})
		require.NoError(t, err)

		assert.Contains(t, f.discounts.Deleted, "d-1")
		assert.False(t, b.HasDiscount("d-1"))
		assert.Equal(t, "200.00", b.FinalPrice().String())
	})

	t.Run("vanished target leaves the record delete standing", func(t *testing.T) {
		f := setup(t)
		f.seedDiscount(t, domain.ProductTarget("p-gone"))

		err := f.interactor.Execute(ctx, &Request{CallerID: "seller-1", DiscountID: "d-1"})
		require.NoError(t, err)

		assert.Contains(t, f.discounts.Deleted, "d-1")
		assert.Equal(t, 1, f.committer.LastPlan().Count())
	})

	t.Run("foreign discount is forbidden", func(t *testing.T) {
		f := setup(t)
		f.seedDiscount(t, domain.ProductTarget("p-1"))

		err := f.interactor.Execute(ctx, &Request{CallerID: "seller-2", DiscountID: "d-1"})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("unknown discount", func(t *testing.T) {
		f := setup(t)
		err := f.interactor.Execute(ctx, &Request{CallerID: "seller-1", DiscountID: "nope"})
		assert.ErrorIs(t, err, domain.ErrDiscountNotFound)
	})

	t.Run("missing caller is unauthorized", func(t *testing.T) {
		f := setup(t)
		err := f.interactor.Execute(ctx, &Request{DiscountID: "d-1"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

package remove_bundle_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	bundles    *catalogtest.FakeBundles
	products   *catalogtest.FakeProducts
	discounts  *catalogtest.FakeDiscounts
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bundles:   catalogtest.NewFakeBundles(),
		products:  catalogtest.NewFakeProducts(),
		discounts: catalogtest.NewFakeDiscounts(),
		committer: catalogtest.NewFakeCommitter(),
		clk:       clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.bundles, f.products, f.discounts, f.committer, f.clk, logger.NewNop())
	return f
}

func (f *fixture) seedProduct(t *testing.T, id string, mrp int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, "seller-1", "Product "+id, "d",
		domain.NewMoneyFromInt64(mrp), 0, 1, "", testNow, f.clk)
	require.NoError(t, err)
	p.ClearEvents()
	p.AddBundleRef("b-1")
	f.products.Put(p)
	return p
}

// seedBundle creates b-1 with p-1 once and p-2 twice: MRP 100 + 2*50 = 200.
func (f *fixture) seedBundle(t *testing.T) *domain.Bundle {
	t.Helper()
	f.seedProduct(t, "p-1", 100)
	f.seedProduct(t, "p-2", 50)
	b, err := domain.NewBundle("b-1", "seller-1", "Kit", "d",
		[]domain.BundleLine{
			{ProductID: "p-1", Quantity: 1},
			{ProductID: "p-2", Quantity: 2},
		}, 0,
		map[string]*domain.Money{
			"p-1": domain.NewMoneyFromInt64(100),
			"p-2": domain.NewMoneyFromInt64(50),
		}, testNow, f.clk)
	require.NoError(t, err)
	b.ClearEvents()
	f.bundles.Put(b)
	return b
}

func TestRemoveBundleProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("splices the member and re-prices from the rest", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)
		require.Equal(t, "200.00", b.MRP().String())

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1", ProductID: "p-1",
		})
		require.NoError(t, err)

		assert.False(t, b.ContainsProduct("p-1"))
		assert.Equal(t, "100.00", b.MRP().String())
		assert.Equal(t, "100.00", b.SellingPrice().String())
		assert.NotContains(t, f.products.Items["p-1"].BundleIDs(), "b-1")

		require.Len(t, f.committer.Checks, 1)
		assert.Equal(t, "bundles", f.committer.Checks[0].Table)
		// bundle update plus member back-reference in one plan
		assert.Equal(t, 2, f.committer.LastPlan().Count())
	})

	t.Run("removing the last member leaves a zero-priced bundle", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", 100)
		b, err := domain.NewBundle("b-1", "seller-1", "Solo", "d",
			[]domain.BundleLine{{ProductID: "p-1", Quantity: 1}}, 0,
			map[string]*domain.Money{"p-1": domain.NewMoneyFromInt64(100)},
			testNow, f.clk)
		require.NoError(t, err)
		f.bundles.Put(b)

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1", ProductID: "p-1",
		})
		require.NoError(t, err)

		assert.Equal(t, 0, b.MemberCount())
		assert.True(t, b.SellingPrice().IsZero())
		assert.False(t, b.IsDeleted())
	})

	t.Run("vanished member still fixes the bundle side", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)
		delete(f.products.Items, "p-1")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1", ProductID: "p-1",
		})
		require.NoError(t, err)

		assert.False(t, b.ContainsProduct("p-1"))
		// only the bundle row is written
		assert.Equal(t, 1, f.committer.LastPlan().Count())
	})

	t.Run("non-member product is not found", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1", ProductID: "p-9",
		})
		assert.ErrorIs(t, err, domain.ErrProductNotInBundle)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("foreign bundle is forbidden", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-2", BundleID: "b-1", ProductID: "p-1",
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("version conflict surfaces as a domain error", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)
		f.committer.Conflict = true

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1", ProductID: "p-1",
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

package update_bundle

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

func i64Ptr(v int64) *int64 { return &v }

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
	f.interactor = NewInteractor(f.bundles, f.products, f.discounts, f.committer, f.clk)
	return f
}

func (f *fixture) seedProduct(t *testing.T, id string, mrp int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, "seller-1", "Product "+id, "d",
		domain.NewMoneyFromInt64(mrp), 0, 1, "", testNow, f.clk)
	require.NoError(t, err)
	p.ClearEvents()
	f.products.Put(p)
	return p
}

// seedBundle creates a bundle holding p-1 twice, priced from the live row.
func (f *fixture) seedBundle(t *testing.T) *domain.Bundle {
	t.Helper()
	f.seedProduct(t, "p-1", 100)
	b, err := domain.NewBundle("b-1", "seller-1", "Kit", "d",
		[]domain.BundleLine{{ProductID: "p-1", Quantity: 2}}, 0,
		map[string]*domain.Money{"p-1": domain.NewMoneyFromInt64(100)},
		testNow, f.clk)
	require.NoError(t, err)
	b.ClearEvents()
	f.bundles.Put(b)
	return b
}

func TestUpdateBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("discount change re-prices the bundle", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)
		require.Equal(t, "200.00", b.SellingPrice().String())

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			DiscountPercent: i64Ptr(10),
		})
		require.NoError(t, err)

		assert.Equal(t, "200.00", b.MRP().String())
		assert.Equal(t, "180.00", b.SellingPrice().String())

		require.Len(t, f.committer.Checks, 1)
		assert.Equal(t, "bundles", f.committer.Checks[0].Table)
	})

	t.Run("new members merge in and re-price the bundle", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)
		p2 := f.seedProduct(t, "p-2", 50)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			AddLines: []domain.BundleLine{{ProductID: "p-2", Quantity: 1}},
		})
		require.NoError(t, err)

		assert.True(t, b.ContainsProduct("p-2"))
		assert.Equal(t, "250.00", b.MRP().String())
		assert.Contains(t, p2.BundleIDs(), "b-1")
		// member back-reference plus bundle update in one plan
		assert.Equal(t, 2, f.committer.LastPlan().Count())
	})

	t.Run("duplicate member leaves the bundle untouched", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			AddLines: []domain.BundleLine{{ProductID: "p-1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateBundleProduct)

		assert.Equal(t, 1, b.MemberCount())
		assert.Equal(t, "200.00", b.SellingPrice().String())
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("foreign member is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)
		foreign, err := domain.NewProduct("p-x", "seller-2", "Foreign", "d",
			domain.NewMoneyFromInt64(30), 0, 1, "", testNow, f.clk)
		require.NoError(t, err)
		f.products.Put(foreign)

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			AddLines: []domain.BundleLine{{ProductID: "p-x", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrBundleMemberNotOwned)
	})

	t.Run("foreign bundle is forbidden", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-2", BundleID: "b-1",
			DiscountPercent: i64Ptr(5),
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("deleted bundle reads as missing", func(t *testing.T) {
		f := setup(t)
		b := f.seedBundle(t)
		b.SoftDelete(testNow)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			DiscountPercent: i64Ptr(5),
		})
		assert.ErrorIs(t, err, domain.ErrBundleNotFound)
	})

	t.Run("version conflict surfaces as a domain error", func(t *testing.T) {
		f := setup(t)
		f.seedBundle(t)
		f.committer.Conflict = true

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", BundleID: "b-1",
			DiscountPercent: i64Ptr(5),
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

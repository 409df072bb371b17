package update_product

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

func strPtr(v string) *string { return &v }
func i64Ptr(v int64) *int64   { return &v }

type fixture struct {
	products   *catalogtest.FakeProducts
	bundles    *catalogtest.FakeBundles
	discounts  *catalogtest.FakeDiscounts
	categories *catalogtest.FakeCategories
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products:   catalogtest.NewFakeProducts(),
		bundles:    catalogtest.NewFakeBundles(),
		discounts:  catalogtest.NewFakeDiscounts(),
		categories: catalogtest.NewFakeCategories(),
		committer:  catalogtest.NewFakeCommitter(),
		clk:        clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.products, f.bundles, f.discounts, f.categories, f.committer, f.clk)
	return f
}

func (f *fixture) seedProduct(t *testing.T, id, name string, mrp, percent int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, "seller-1", name, "d",
		domain.NewMoneyFromInt64(mrp), percent, 1, "", testNow, f.clk)
	require.NoError(t, err)
	p.ClearEvents()
	f.products.Put(p)
	return p
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("MRP change re-derives the selling price", func(t *testing.T) {
		f := setup(t)
		p := f.seedProduct(t, "p-1", "Keyboard", 2000, 10)
		require.Equal(t, "1800.00", p.SellingPrice().String())

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			MRP: domain.NewMoneyFromInt64(1000),
		})
		require.NoError(t, err)

		assert.Equal(t, "900.00", p.SellingPrice().String())
		assert.Equal(t, "900.00", p.FinalPrice().String())

		require.Len(t, f.committer.Checks, 1)
		assert.Equal(t, "products", f.committer.Checks[0].Table)
		assert.Equal(t, "p-1", f.committer.Checks[0].ID)
	})

	t.Run("attached discounts refold over the new selling price", func(t *testing.T) {
		f := setup(t)
		p := f.seedProduct(t, "p-1", "Keyboard", 200, 0)

		d, err := domain.NewDiscount("d-1", "seller-1", domain.ProductTarget("p-1"),
			domain.DiscountPercentage, domain.NewMoneyFromInt64(10),
			testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7), testNow)
		require.NoError(t, err)
		f.discounts.Put(d)
		p.AttachDiscount("d-1")
		p.RefoldFinalPrice([]*domain.Discount{d}, testNow)
		require.Equal(t, "180.00", p.FinalPrice().String())

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			MRP: domain.NewMoneyFromInt64(100),
		})
		require.NoError(t, err)

		assert.Equal(t, "100.00", p.SellingPrice().String())
		assert.Equal(t, "90.00", p.FinalPrice().String())
	})

	t.Run("containing bundles are re-priced in the same commit", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "Keyboard", 100, 0)

		b, err := domain.NewBundle("b-1", "seller-1", "Kit", "d",
			[]domain.BundleLine{{ProductID: "p-1", Quantity: 2}}, 0,
			map[string]*domain.Money{"p-1": domain.NewMoneyFromInt64(100)},
			testNow, f.clk)
		require.NoError(t, err)
		f.bundles.Put(b)
		require.Equal(t, "200.00", b.MRP().String())

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			MRP: domain.NewMoneyFromInt64(150),
		})
		require.NoError(t, err)

		assert.Equal(t, "300.00", b.MRP().String())
		assert.Equal(t, "300.00", b.SellingPrice().String())
		// bundle update plus product update in one plan
		assert.Equal(t, 2, f.committer.LastPlan().Count())
	})

	t.Run("category move swaps the back-references", func(t *testing.T) {
		f := setup(t)
		p := f.seedProduct(t, "p-1", "Keyboard", 100, 0)
		p.MoveCategory("cat-1")

		old, err := domain.NewCategory("cat-1", "Electronics", "", testNow, f.clk)
		require.NoError(t, err)
		old.AddProduct("p-1")
		f.categories.Put(old)

		next, err := domain.NewCategory("cat-2", "Accessories", "", testNow, f.clk)
		require.NoError(t, err)
		f.categories.Put(next)

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			CategoryID: strPtr("cat-2"),
		})
		require.NoError(t, err)

		assert.Equal(t, "cat-2", p.CategoryID())
		assert.False(t, old.ContainsProduct("p-1"))
		assert.True(t, next.ContainsProduct("p-1"))
	})

	t.Run("rename to a taken name is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "Keyboard", 100, 0)
		f.seedProduct(t, "p-2", "Mouse", 50, 0)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-2",
			Name: strPtr("Keyboard"),
		})
		assert.ErrorIs(t, err, domain.ErrProductNameTaken)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("invalid discount percent is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "Keyboard", 100, 0)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			DiscountPercent: i64Ptr(101),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	})

	t.Run("foreign product is forbidden", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "Keyboard", 100, 0)

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-2", ProductID: "p-1",
			Description: strPtr("mine now"),
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("deleted product reads as missing", func(t *testing.T) {
		f := setup(t)
		p := f.seedProduct(t, "p-1", "Keyboard", 100, 0)
		require.NoError(t, p.SoftDelete(testNow))

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			Description: strPtr("gone"),
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("version conflict surfaces as a domain error", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "Keyboard", 100, 0)
		f.committer.Conflict = true

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", ProductID: "p-1",
			Quantity: i64Ptr(3),
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

package add_sale_products

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
	sales      *catalogtest.FakeSales
	products   *catalogtest.FakeProducts
	bundles    *catalogtest.FakeBundles
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sales:     catalogtest.NewFakeSales(),
		products:  catalogtest.NewFakeProducts(),
		bundles:   catalogtest.NewFakeBundles(),
		committer: catalogtest.NewFakeCommitter(),
		clk:       clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.sales, f.products, f.bundles, f.committer, f.clk)
	return f
}

func (f *fixture) seedSale(t *testing.T, start, end time.Time) *domain.Sale {
	t.Helper()
	s, err := domain.NewSale("sale-1", "Summer Sale", []domain.SaleCategory{
		{CategoryID: "cat-electronics", Percent: 20},
		{CategoryID: "cat-books", Percent: 10},
	}, start, end, testNow, f.clk)
	require.NoError(t, err)
	f.sales.Put(s)
	return s
}

func (f *fixture) seedProduct(t *testing.T, id string, mrp int64, categoryID string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, "seller-1", "Product "+id, "d",
		domain.NewMoneyFromInt64(mrp), 0, 1, categoryID, testNow, f.clk)
	require.NoError(t, err)
	p.ClearEvents()
	f.products.Put(p)
	return p
}

func TestAddSaleProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("running sale discounts opted-in products", func(t *testing.T) {
		f := setup(t)
		sale := f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		p := f.seedProduct(t, "p-1", 100, "cat-electronics")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		require.NoError(t, err)

		assert.True(t, sale.ContainsProduct("p-1"))
		assert.Equal(t, "80.00", p.SellingPrice().String()) // 100 - 20%
		require.NotNil(t, p.AdminDiscount())
		assert.Equal(t, int64(20), *p.AdminDiscount())

		require.Len(t, f.committer.Checks, 1)
		assert.Equal(t, "sales", f.committer.Checks[0].Table)
	})

	t.Run("future sale records membership without pricing", func(t *testing.T) {
		f := setup(t)
		sale := f.seedSale(t, testNow.AddDate(0, 0, 1), testNow.AddDate(0, 0, 7))
		p := f.seedProduct(t, "p-1", 100, "cat-electronics")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		require.NoError(t, err)

		assert.True(t, sale.ContainsProduct("p-1"))
		assert.Equal(t, "100.00", p.SellingPrice().String())
		assert.Nil(t, p.AdminDiscount())
	})

	t.Run("bundles ride in at the best member rate", func(t *testing.T) {
		f := setup(t)
		sale := f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		f.seedProduct(t, "p-1", 100, "cat-electronics") // 20%
		f.seedProduct(t, "p-2", 50, "cat-books")        // 10%

		b, err := domain.NewBundle("b-1", "seller-1", "Kit", "d",
			[]domain.BundleLine{
				{ProductID: "p-1", Quantity: 1},
				{ProductID: "p-2", Quantity: 1},
			}, 0,
			map[string]*domain.Money{
				"p-1": domain.NewMoneyFromInt64(100),
				"p-2": domain.NewMoneyFromInt64(50),
			}, testNow, f.clk)
		require.NoError(t, err)
		f.bundles.Put(b)

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		require.NoError(t, err)

		assert.True(t, sale.ContainsBundle("b-1"))
		// member selling total folds in p-1's already-applied 20% cut:
		// 80 + 50 = 130, then 20% off = 104
		assert.Equal(t, "104.00", b.SellingPrice().String())
		require.NotNil(t, b.AdminDiscount())
		assert.Equal(t, int64(20), *b.AdminDiscount())
	})

	t.Run("bundle totals count each member once regardless of quantity", func(t *testing.T) {
		f := setup(t)
		sale := f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		f.seedProduct(t, "p-1", 100, "cat-electronics")

		b, err := domain.NewBundle("b-1", "seller-1", "Triple", "d",
			[]domain.BundleLine{{ProductID: "p-1", Quantity: 3}}, 0,
			map[string]*domain.Money{"p-1": domain.NewMoneyFromInt64(100)},
			testNow, f.clk)
		require.NoError(t, err)
		f.bundles.Put(b)

		err = f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		require.NoError(t, err)

		assert.True(t, sale.ContainsBundle("b-1"))
		// p-1 is discounted to 80 first; the member total is 80, not 240
		assert.Equal(t, "64.00", b.SellingPrice().String())
	})

	t.Run("ended sale is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedSale(t, testNow.AddDate(0, 0, -14), testNow.AddDate(0, 0, -7))
		f.seedProduct(t, "p-1", 100, "cat-electronics")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrSaleEnded)
	})

	t.Run("category outside the sale is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		f.seedProduct(t, "p-1", 100, "cat-garden")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrCategoryNotInSale)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("already opted-in product is rejected", func(t *testing.T) {
		f := setup(t)
		sale := f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		require.NoError(t, sale.AddProduct("p-1"))
		f.seedProduct(t, "p-1", 100, "cat-electronics")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrProductAlreadyInSale)
	})

	t.Run("foreign product is forbidden", func(t *testing.T) {
		f := setup(t)
		f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		f.seedProduct(t, "p-1", 100, "cat-electronics")

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-2", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("ineligible product is rejected", func(t *testing.T) {
		f := setup(t)
		f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		p := f.seedProduct(t, "p-1", 100, "cat-electronics")
		require.NoError(t, p.SoftDelete(testNow))

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrProductNotEligible)
	})

	t.Run("version conflict surfaces as a domain error", func(t *testing.T) {
		f := setup(t)
		f.seedSale(t, testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, 7))
		f.seedProduct(t, "p-1", 100, "cat-electronics")
		f.committer.Conflict = true

		err := f.interactor.Execute(ctx, &Request{
			CallerID: "seller-1", SaleID: "sale-1", ProductIDs: []string{"p-1"},
		})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

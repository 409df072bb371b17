package create_bundle

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
	bundles    *catalogtest.FakeBundles
	products   *catalogtest.FakeProducts
	outbox     *catalogtest.FakeOutbox
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bundles:   catalogtest.NewFakeBundles(),
		products:  catalogtest.NewFakeProducts(),
		outbox:    catalogtest.NewFakeOutbox(),
		committer: catalogtest.NewFakeCommitter(),
		clk:       clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.bundles, f.products, f.outbox, f.committer, f.clk)
	return f
}

func (f *fixture) seedProduct(t *testing.T, id, sellerID string, mrp int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, sellerID, "Product "+id, "d",
		domain.NewMoneyFromInt64(mrp), 0, 1, "", testNow, f.clk)
	require.NoError(t, err)
	p.ClearEvents()
	f.products.Put(p)
	return p
}

func TestCreateBundle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates bundle priced from member MRPs", func(t *testing.T) {
		f := setup(t)
		p1 := f.seedProduct(t, "p-1", "seller-1", 100)
		p2 := f.seedProduct(t, "p-2", "seller-1", 50)

		id, err := f.interactor.Execute(ctx, &Request{
			SellerID:    "seller-1",
			Name:        "Starter Kit",
			Description: "Keyboard and mouse",
			Lines: []domain.BundleLine{
				{ProductID: "p-1", Quantity: 2},
				{ProductID: "p-2", Quantity: 1},
			},
			DiscountPercent: 10,
		})
		require.NoError(t, err)

		bundle := f.bundles.Items[id]
		require.NotNil(t, bundle)
		assert.Equal(t, "250.00", bundle.MRP().String())
		assert.Equal(t, "225.00", bundle.SellingPrice().String())

		// both members carry the back-reference
		assert.Contains(t, p1.BundleIDs(), id)
		assert.Contains(t, p2.BundleIDs(), id)

		require.Len(t, f.outbox.Events, 1)
		assert.Equal(t, "bundle.created", f.outbox.Events[0].EventType)

		// bundle insert, two member updates, one outbox event
		assert.Equal(t, 4, f.committer.LastPlan().Count())
	})

	t.Run("missing caller is unauthorized", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, &Request{Name: "Kit"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("empty membership is rejected", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, &Request{SellerID: "seller-1", Name: "Kit", Description: "d"})
		assert.ErrorIs(t, err, domain.ErrEmptyBundle)
	})

	t.Run("foreign member rejects the whole bundle", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "seller-1", 100)
		f.seedProduct(t, "p-2", "seller-2", 50)

		_, err := f.interactor.Execute(ctx, &Request{
			SellerID:    "seller-1",
			Name:        "Kit",
			Description: "d",
			Lines: []domain.BundleLine{
				{ProductID: "p-1", Quantity: 1},
				{ProductID: "p-2", Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, domain.ErrBundleMemberNotOwned)
		assert.Empty(t, f.committer.Plans)
		assert.Empty(t, f.bundles.Items)
	})

	t.Run("deleted member rejects the whole bundle", func(t *testing.T) {
		f := setup(t)
		p := f.seedProduct(t, "p-1", "seller-1", 100)
		require.NoError(t, p.SoftDelete(testNow))

		_, err := f.interactor.Execute(ctx, &Request{
			SellerID:    "seller-1",
			Name:        "Kit",
			Description: "d",
			Lines:       []domain.BundleLine{{ProductID: "p-1", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrBundleMemberNotOwned)
	})

	t.Run("unknown member rejects the whole bundle", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, &Request{
			SellerID:    "seller-1",
			Name:        "Kit",
			Description: "d",
			Lines:       []domain.BundleLine{{ProductID: "ghost", Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrBundleMemberNotOwned)
	})

	t.Run("duplicate members are rejected by the aggregate", func(t *testing.T) {
		f := setup(t)
		f.seedProduct(t, "p-1", "seller-1", 100)
		_, err := f.interactor.Execute(ctx, &Request{
			SellerID:    "seller-1",
			Name:        "Kit",
			Description: "d",
			Lines: []domain.BundleLine{
				{ProductID: "p-1", Quantity: 1},
				{ProductID: "p-1", Quantity: 2},
			},
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateBundleProduct)
	})
}

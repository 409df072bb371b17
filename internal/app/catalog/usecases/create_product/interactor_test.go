package create_product

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
	products   *catalogtest.FakeProducts
	categories *catalogtest.FakeCategories
	outbox     *catalogtest.FakeOutbox
	committer  *catalogtest.FakeCommitter
	clk        *clock.MockClock
	interactor *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products:   catalogtest.NewFakeProducts(),
		categories: catalogtest.NewFakeCategories(),
		outbox:     catalogtest.NewFakeOutbox(),
		committer:  catalogtest.NewFakeCommitter(),
		clk:        clock.NewMockClock(testNow),
	}
	f.interactor = NewInteractor(f.products, f.categories, f.outbox, f.committer, f.clk)
	return f
}

func validRequest() *Request {
	return &Request{
		SellerID:        "seller-1",
		Name:            "Mechanical Keyboard",
		Description:     "Tactile switches",
		MRP:             domain.NewMoneyFromInt64(2000),
		DiscountPercent: 10,
		Quantity:        5,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with derived prices", func(t *testing.T) {
		f := setup(t)

		id, err := f.interactor.Execute(ctx, validRequest())
		require.NoError(t, err)
		require.NotEmpty(t, id)

		product := f.products.Items[id]
		require.NotNil(t, product)
		assert.Equal(t, "1800.00", product.SellingPrice().String())
		assert.Equal(t, "1800.00", product.FinalPrice().String())

		require.Len(t, f.outbox.Events, 1)
		assert.Equal(t, "product.created", f.outbox.Events[0].EventType)
		assert.Equal(t, id, f.outbox.Events[0].AggregateID)

		// product insert plus outbox event in one plan
		require.NotNil(t, f.committer.LastPlan())
		assert.Equal(t, 2, f.committer.LastPlan().Count())
	})

	t.Run("files the product under its category", func(t *testing.T) {
		f := setup(t)
		cat, err := domain.NewCategory("cat-1", "Electronics", "", testNow, f.clk)
		require.NoError(t, err)
		f.categories.Put(cat)

		req := validRequest()
		req.CategoryID = "cat-1"
		id, err := f.interactor.Execute(ctx, req)
		require.NoError(t, err)

		assert.True(t, cat.ContainsProduct(id))
		// product, category and outbox mutations in one plan
		assert.Equal(t, 3, f.committer.LastPlan().Count())
	})

	t.Run("missing caller is unauthorized", func(t *testing.T) {
		f := setup(t)
		req := validRequest()
		req.SellerID = ""
		_, err := f.interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("duplicate name within the seller is rejected", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, validRequest())
		require.NoError(t, err)

		_, err = f.interactor.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, domain.ErrProductNameTaken)
	})

	t.Run("same name under another seller is fine", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.SellerID = "seller-2"
		_, err = f.interactor.Execute(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("unknown category rejects the request", func(t *testing.T) {
		f := setup(t)
		req := validRequest()
		req.CategoryID = "cat-missing"
		_, err := f.interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("invalid fields fail before any commit", func(t *testing.T) {
		f := setup(t)
		req := validRequest()
		req.MRP = domain.Zero()
		_, err := f.interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidMRP)
		assert.Empty(t, f.committer.Plans)
	})

	t.Run("field validation wins over the duplicate name check", func(t *testing.T) {
		f := setup(t)
		_, err := f.interactor.Execute(ctx, validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.Quantity = 0
		_, err = f.interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

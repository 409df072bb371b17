package update_product

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_product"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the fields to update. Nil pointers leave the field alone.
type Request struct {
	CallerID  string
	ProductID string

	Name            *string
	Description     *string
	MRP             *domain.Money
	DiscountPercent *int64
	Quantity        *int64
	CategoryID      *string
}

// Interactor handles the update product use case.
type Interactor struct {
	products   contracts.ProductRepository
	bundles    contracts.BundleRepository
	discounts  contracts.DiscountRepository
	categories contracts.CategoryRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new update product interactor.
func NewInteractor(
	products contracts.ProductRepository,
	bundles contracts.BundleRepository,
	discounts contracts.DiscountRepository,
	categories contracts.CategoryRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		products:   products,
		bundles:    bundles,
		discounts:  discounts,
		categories: categories,
		committer:  cmt,
		clock:      clk,
	}
}

// Execute applies a partial update to a product, re-deriving selling and
// final prices and re-pricing every bundle the product belongs to. The whole
// write is guarded by an optimistic version check on the product row.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.CallerID == "" {
		return domain.ErrUnauthorized
	}

	product, err := i.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if product.IsDeleted() {
		return domain.ErrProductNotFound
	}
	if !product.OwnedBy(req.CallerID) {
		return domain.ErrNotOwner
	}

	if req.Name != nil && *req.Name != product.Name() {
		taken, err := i.products.NameTaken(ctx, req.CallerID, *req.Name)
		if err != nil {
			return fmt.Errorf("failed to check product name: %w", err)
		}
		if taken {
			return domain.ErrProductNameTaken
		}
		if err := product.SetName(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		product.SetDescription(*req.Description)
	}
	if req.Quantity != nil {
		if err := product.SetQuantity(*req.Quantity); err != nil {
			return err
		}
	}

	priceChanged := false
	if req.MRP != nil {
		if err := product.SetMRP(req.MRP); err != nil {
			return err
		}
		priceChanged = true
	}
	if req.DiscountPercent != nil {
		if err := product.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return err
		}
		priceChanged = true
	}

	plan := committer.NewPlan()

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID() {
		if err := i.moveCategory(ctx, product, *req.CategoryID, plan); err != nil {
			return err
		}
	}

	if priceChanged {
		// Final price folds the attached discounts over the new selling price.
		attached, err := i.discounts.GetByIDs(ctx, product.DiscountIDs())
		if err != nil {
			return err
		}
		product.RefoldFinalPrice(attached, i.clock.Now())

		// Bundles derive their MRP from member prices; a stale bundle
		// price is a consistency bug, so they are updated in the same
		// commit.
		if err := i.repriceBundles(ctx, product, plan); err != nil {
			return err
		}
	}

	updateMut, err := i.products.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(updateMut)

	err = i.committer.ApplyWithVersionCheck(ctx, m_product.TableName, product.ID(), product.Version(), plan)
	if errors.Is(err, committer.ErrVersionConflict) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (i *Interactor) moveCategory(ctx context.Context, product *domain.Product, newCategoryID string, plan *committer.CommitPlan) error {
	if oldID := product.CategoryID(); oldID != "" {
		old, err := i.categories.GetByID(ctx, oldID)
		if err == nil {
			old.RemoveProduct(product.ID())
			mut, err := i.categories.UpdateMut(old)
			if err != nil {
				return err
			}
			plan.Add(mut)
		} else if !errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
	}

	if newCategoryID != "" {
		next, err := i.categories.GetByID(ctx, newCategoryID)
		if err != nil {
			return err
		}
		next.AddProduct(product.ID())
		mut, err := i.categories.UpdateMut(next)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	product.MoveCategory(newCategoryID)
	return nil
}

func (i *Interactor) repriceBundles(ctx context.Context, product *domain.Product, plan *committer.CommitPlan) error {
	bundles, err := i.bundles.FindContainingProduct(ctx, product.ID())
	if err != nil {
		return err
	}

	now := i.clock.Now()
	for _, bundle := range bundles {
		prices, err := i.memberPrices(ctx, bundle, product)
		if err != nil {
			return err
		}
		bundle.Reprice(prices)

		attached, err := i.discounts.GetByIDs(ctx, bundle.DiscountIDs())
		if err != nil {
			return err
		}
		bundle.RefoldFinalPrice(attached, now)

		mut, err := i.bundles.UpdateMut(bundle)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}
	return nil
}

// memberPrices resolves live member MRPs, substituting the in-flight state of
// the product being updated for its stored row.
func (i *Interactor) memberPrices(ctx context.Context, bundle *domain.Bundle, updated *domain.Product) (map[string]*domain.Money, error) {
	ids := make([]string, 0, bundle.MemberCount())
	for _, line := range bundle.Lines() {
		ids = append(ids, line.ProductID)
	}

	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]*domain.Money, len(members))
	for id, member := range members {
		if member.IsDeleted() {
			continue
		}
		prices[id] = member.MRP()
	}
	prices[updated.ID()] = updated.MRP()
	return prices, nil
}

package delete_product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_product"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

// Request identifies the product to delete.
type Request struct {
	CallerID  string
	ProductID string
}

// Interactor handles the delete product use case.
type Interactor struct {
	products   contracts.ProductRepository
	bundles    contracts.BundleRepository
	discounts  contracts.DiscountRepository
	categories contracts.CategoryRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	log        *logger.Logger
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(
	products contracts.ProductRepository,
	bundles contracts.BundleRepository,
	discounts contracts.DiscountRepository,
	categories contracts.CategoryRepository,
	outboxRepo contracts.OutboxRepository,
	cmt contracts.Committer,
	clk clock.Clock,
	log *logger.Logger,
) *Interactor {
	return &Interactor{
		products:   products,
		bundles:    bundles,
		discounts:  discounts,
		categories: categories,
		outboxRepo: outboxRepo,
		committer:  cmt,
		clock:      clk,
		log:        log,
	}
}

// Execute soft-deletes a product and cascades the removal: the product is
// spliced out of every bundle that contains it, those bundles are re-priced
// from their remaining live members, discounts targeting the product are
// dropped, and the category back-reference is pulled. Everything commits in
// one transaction; each step is idempotent on its own.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.CallerID == "" {
		return domain.ErrUnauthorized
	}

	product, err := i.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !product.OwnedBy(req.CallerID) {
		return domain.ErrNotOwner
	}

	now := i.clock.Now()
	if err := product.SoftDelete(now); err != nil {
		return err
	}

	plan := committer.NewPlan()

	productMut, err := i.products.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(productMut)

	if err := i.cascadeBundles(ctx, product.ID(), now, plan); err != nil {
		return err
	}

	targeting, err := i.discounts.FindByTarget(ctx, domain.ProductTarget(product.ID()))
	if err != nil {
		return err
	}
	for _, d := range targeting {
		plan.Add(i.discounts.DeleteMut(d.ID()))
	}

	if categoryID := product.CategoryID(); categoryID != "" {
		category, err := i.categories.GetByID(ctx, categoryID)
		if err == nil {
			category.RemoveProduct(product.ID())
			mut, err := i.categories.UpdateMut(category)
			if err != nil {
				return err
			}
			plan.Add(mut)
		} else if !errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
	}

	for _, event := range product.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, string(payload))
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	err = i.committer.ApplyWithVersionCheck(ctx, m_product.TableName, product.ID(), product.Version(), plan)
	if errors.Is(err, committer.ErrVersionConflict) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// cascadeBundles splices the deleted product out of every containing bundle
// and re-prices each from its remaining live members. An empty bundle prices
// at zero; it is not deleted.
func (i *Interactor) cascadeBundles(ctx context.Context, productID string, now time.Time, plan *committer.CommitPlan) error {
	bundles, err := i.bundles.FindContainingProduct(ctx, productID)
	if err != nil {
		return err
	}

	for _, bundle := range bundles {
		if err := bundle.RemoveLine(productID); err != nil {
			// Concurrent membership change; nothing left to splice.
			continue
		}

		prices, err := i.memberPrices(ctx, bundle)
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

func (i *Interactor) memberPrices(ctx context.Context, bundle *domain.Bundle) (map[string]*domain.Money, error) {
	ids := make([]string, 0, bundle.MemberCount())
	for _, line := range bundle.Lines() {
		ids = append(ids, line.ProductID)
	}

	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]*domain.Money, len(members))
	for _, line := range bundle.Lines() {
		member, ok := members[line.ProductID]
		if !ok || member.IsDeleted() {
			i.log.Warn("bundle member unresolvable, contributing zero to bundle price",
				"bundle_id", bundle.ID(), "product_id", line.ProductID)
			continue
		}
		prices[line.ProductID] = member.MRP()
	}
	return prices, nil
}

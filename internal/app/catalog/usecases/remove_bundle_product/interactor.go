package remove_bundle_product

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_bundle"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

// Request identifies the member product to remove from a bundle.
type Request struct {
	CallerID  string
	BundleID  string
	ProductID string
}

// Interactor handles the remove bundle product use case.
type Interactor struct {
	bundles   contracts.BundleRepository
	products  contracts.ProductRepository
	discounts contracts.DiscountRepository
	committer contracts.Committer
	clock     clock.Clock
	log       *logger.Logger
}

// NewInteractor creates a new remove bundle product interactor.
func NewInteractor(
	bundles contracts.BundleRepository,
	products contracts.ProductRepository,
	discounts contracts.DiscountRepository,
	cmt contracts.Committer,
	clk clock.Clock,
	log *logger.Logger,
) *Interactor {
	return &Interactor{
		bundles:   bundles,
		products:  products,
		discounts: discounts,
		committer: cmt,
		clock:     clk,
		log:       log,
	}
}

// Execute splices a member out of a bundle and re-prices the bundle from the
// remaining live members. Removing the last member leaves an empty bundle
// priced at zero; it is not deleted.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.CallerID == "" {
		return domain.ErrUnauthorized
	}

	bundle, err := i.bundles.GetByID(ctx, req.BundleID)
	if err != nil {
		return err
	}
	if bundle.IsDeleted() {
		return domain.ErrBundleNotFound
	}
	if !bundle.OwnedBy(req.CallerID) {
		return domain.ErrNotOwner
	}

	if err := bundle.RemoveLine(req.ProductID); err != nil {
		return err
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
	bundle.RefoldFinalPrice(attached, i.clock.Now())

	plan := committer.NewPlan()

	updateMut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(updateMut)

	// Pull the back-reference if the product still exists; its absence
	// is not an error, the membership side has already been fixed.
	removed, err := i.products.GetByID(ctx, req.ProductID)
	if err == nil {
		removed.RemoveBundleRef(bundle.ID())
		mut, err := i.products.UpdateMut(removed)
		if err != nil {
			return err
		}
		plan.Add(mut)
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return err
	}

	err = i.committer.ApplyWithVersionCheck(ctx, m_bundle.TableName, bundle.ID(), bundle.Version(), plan)
	if errors.Is(err, committer.ErrVersionConflict) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
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

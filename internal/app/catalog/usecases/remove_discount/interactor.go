package remove_discount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request identifies the discount to remove.
type Request struct {
	CallerID   string
	DiscountID string
}

// Interactor handles the remove discount use case.
type Interactor struct {
	discounts contracts.DiscountRepository
	products  contracts.ProductRepository
	bundles   contracts.BundleRepository
	committer contracts.Committer
	clock     clock.Clock
}

// NewInteractor creates a new remove discount interactor.
func NewInteractor(
	discounts contracts.DiscountRepository,
	products contracts.ProductRepository,
	bundles contracts.BundleRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		discounts: discounts,
		products:  products,
		bundles:   bundles,
		committer: cmt,
		clock:     clk,
	}
}

// Execute deletes a discount, strips its reference from the target and
// refolds the target's final price over what remains.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.CallerID == "" {
		return domain.ErrUnauthorized
	}

	discount, err := i.discounts.GetByID(ctx, req.DiscountID)
	if err != nil {
		return err
	}
	if !discount.OwnedBy(req.CallerID) {
		return domain.ErrNotOwner
	}

	now := i.clock.Now()
	plan := committer.NewPlan()
	plan.Add(i.discounts.DeleteMut(discount.ID()))

	if discount.Target().Kind() == domain.TargetProduct {
		err = i.detachFromProduct(ctx, discount, now, plan)
	} else {
		err = i.detachFromBundle(ctx, discount, now, plan)
	}
	if err != nil {
		return err
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (i *Interactor) detachFromProduct(ctx context.Context, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	product, err := i.products.GetByID(ctx, discount.Target().ID())
	if err != nil {
		// The target may already be gone; the record delete stands alone.
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return err
	}

	if !product.DetachDiscount(discount.ID()) {
		return nil
	}

	remaining, err := i.discounts.GetByIDs(ctx, product.DiscountIDs())
	if err != nil {
		return err
	}
	product.RefoldFinalPrice(remaining, now)

	mut, err := i.products.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

func (i *Interactor) detachFromBundle(ctx context.Context, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	bundle, err := i.bundles.GetByID(ctx, discount.Target().ID())
	if err != nil {
		if errors.Is(err, domain.ErrBundleNotFound) {
			return nil
		}
		return err
	}

	if !bundle.DetachDiscount(discount.ID()) {
		return nil
	}

	remaining, err := i.discounts.GetByIDs(ctx, bundle.DiscountIDs())
	if err != nil {
		return err
	}
	bundle.RefoldFinalPrice(remaining, now)

	mut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

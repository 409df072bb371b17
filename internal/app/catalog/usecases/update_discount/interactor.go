package update_discount

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the replacement type, value and window for a discount.
type Request struct {
	CallerID   string
	DiscountID string
	Type       domain.DiscountType
	Value      *domain.Money
	StartDate  time.Time
	EndDate    time.Time
}

// Interactor handles the update discount use case.
type Interactor struct {
	discounts contracts.DiscountRepository
	products  contracts.ProductRepository
	bundles   contracts.BundleRepository
	committer contracts.Committer
	clock     clock.Clock
}

// NewInteractor creates a new update discount interactor.
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

// Execute overwrites a discount's type, value and window, then re-evaluates
// activation against the target in both directions: a window moved over now
// attaches, a window moved away detaches. The target's final price refolds
// either way.
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
	if err := discount.Revise(req.Type, req.Value, req.StartDate, req.EndDate, now); err != nil {
		return err
	}

	plan := committer.NewPlan()

	discountMut, err := i.discounts.UpdateMut(discount)
	if err != nil {
		return err
	}
	plan.Add(discountMut)

	if discount.Target().Kind() == domain.TargetProduct {
		err = i.syncProduct(ctx, discount, now, plan)
	} else {
		err = i.syncBundle(ctx, discount, now, plan)
	}
	if err != nil {
		return err
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// foldList rebuilds the fold input from the target's attachment order,
// substituting the revised discount for its stale stored copy.
func foldList(attached []*domain.Discount, revised *domain.Discount) []*domain.Discount {
	out := make([]*domain.Discount, 0, len(attached))
	for _, d := range attached {
		if d.ID() == revised.ID() {
			out = append(out, revised)
		} else {
			out = append(out, d)
		}
	}
	return out
}

func (i *Interactor) syncProduct(ctx context.Context, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	product, err := i.products.GetByID(ctx, discount.Target().ID())
	if err != nil {
		return err
	}

	attached, err := i.discounts.GetByIDs(ctx, product.DiscountIDs())
	if err != nil {
		return err
	}
	folds := foldList(attached, discount)

	active := discount.IsActiveAt(now)
	switch {
	case active && !product.HasDiscount(discount.ID()):
		product.AttachDiscount(discount.ID())
		folds = append(folds, discount)
	case !active && product.HasDiscount(discount.ID()):
		product.DetachDiscount(discount.ID())
	}

	product.RefoldFinalPrice(folds, now)

	mut, err := i.products.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

func (i *Interactor) syncBundle(ctx context.Context, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	bundle, err := i.bundles.GetByID(ctx, discount.Target().ID())
	if err != nil {
		return err
	}

	attached, err := i.discounts.GetByIDs(ctx, bundle.DiscountIDs())
	if err != nil {
		return err
	}
	folds := foldList(attached, discount)

	active := discount.IsActiveAt(now)
	switch {
	case active && !bundle.HasDiscount(discount.ID()):
		bundle.AttachDiscount(discount.ID())
		folds = append(folds, discount)
	case !active && bundle.HasDiscount(discount.ID()):
		bundle.DetachDiscount(discount.ID())
	}

	bundle.RefoldFinalPrice(folds, now)

	mut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

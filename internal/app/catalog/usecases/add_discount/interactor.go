package add_discount

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the data needed to create a discount. Exactly one of
// ProductID and BundleID must be set.
type Request struct {
	SellerID  string
	ProductID string
	BundleID  string
	Type      domain.DiscountType
	Value     *domain.Money
	StartDate time.Time
	EndDate   time.Time
}

// Interactor handles the add discount use case.
type Interactor struct {
	discounts contracts.DiscountRepository
	products  contracts.ProductRepository
	bundles   contracts.BundleRepository
	committer contracts.Committer
	clock     clock.Clock
}

// NewInteractor creates a new add discount interactor.
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

// Execute creates a discount against a single product or bundle. When the
// validity window already contains now, the discount attaches to its target
// and the target's final price refolds in the same commit; otherwise it is
// stored dormant and picked up lazily once its window opens.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	if req.SellerID == "" {
		return "", domain.ErrUnauthorized
	}
	if (req.ProductID == "") == (req.BundleID == "") {
		return "", domain.ErrDiscountTargetRequired
	}

	var target domain.Target
	if req.ProductID != "" {
		target = domain.ProductTarget(req.ProductID)
	} else {
		target = domain.BundleTarget(req.BundleID)
	}

	now := i.clock.Now()
	discountID := uuid.New().String()

	discount, err := domain.NewDiscount(discountID, req.SellerID, target, req.Type, req.Value, req.StartDate, req.EndDate, now)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()

	insertMut, err := i.discounts.InsertMut(discount)
	if err != nil {
		return "", err
	}
	plan.Add(insertMut)

	if target.Kind() == domain.TargetProduct {
		err = i.attachToProduct(ctx, req.SellerID, discount, now, plan)
	} else {
		err = i.attachToBundle(ctx, req.SellerID, discount, now, plan)
	}
	if err != nil {
		return "", err
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return discount.ID(), nil
}

func (i *Interactor) attachToProduct(ctx context.Context, callerID string, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	product, err := i.products.GetByID(ctx, discount.Target().ID())
	if err != nil {
		return err
	}
	if product.IsDeleted() {
		return domain.ErrProductNotFound
	}
	if !product.OwnedBy(callerID) {
		return domain.ErrNotOwner
	}

	if !discount.IsActiveAt(now) {
		return nil
	}

	attached, err := i.discounts.GetByIDs(ctx, product.DiscountIDs())
	if err != nil {
		return err
	}
	product.AttachDiscount(discount.ID())
	product.RefoldFinalPrice(append(attached, discount), now)

	mut, err := i.products.UpdateMut(product)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

func (i *Interactor) attachToBundle(ctx context.Context, callerID string, discount *domain.Discount, now time.Time, plan *committer.CommitPlan) error {
	bundle, err := i.bundles.GetByID(ctx, discount.Target().ID())
	if err != nil {
		return err
	}
	if bundle.IsDeleted() {
		return domain.ErrBundleNotFound
	}
	if !bundle.OwnedBy(callerID) {
		return domain.ErrNotOwner
	}

	if !discount.IsActiveAt(now) {
		return nil
	}

	attached, err := i.discounts.GetByIDs(ctx, bundle.DiscountIDs())
	if err != nil {
		return err
	}
	bundle.AttachDiscount(discount.ID())
	bundle.RefoldFinalPrice(append(attached, discount), now)

	mut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(mut)
	return nil
}

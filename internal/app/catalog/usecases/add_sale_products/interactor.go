package add_sale_products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_sale"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the products a seller is opting into a sale.
type Request struct {
	CallerID   string
	SaleID     string
	ProductIDs []string
}

// Interactor handles the add sale products use case.
type Interactor struct {
	sales     contracts.SaleRepository
	products  contracts.ProductRepository
	bundles   contracts.BundleRepository
	committer contracts.Committer
	clock     clock.Clock
}

// NewInteractor creates a new add sale products interactor.
func NewInteractor(
	sales contracts.SaleRepository,
	products contracts.ProductRepository,
	bundles contracts.BundleRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		sales:     sales,
		products:  products,
		bundles:   bundles,
		committer: cmt,
		clock:     clk,
	}
}

// Execute opts the caller's products into a sale. Each product must be owned
// and eligible and must belong to one of the sale's categories; any failure
// rejects the whole request. Bundles containing an opted-in product ride in
// with it. If the sale window is already open, sale pricing applies
// immediately: products get their category's rounded percentage, bundles the
// highest rate among their members' categories.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.CallerID == "" {
		return domain.ErrUnauthorized
	}

	sale, err := i.sales.GetByID(ctx, req.SaleID)
	if err != nil {
		return err
	}

	now := i.clock.Now()
	if sale.HasEnded(now) {
		return domain.ErrSaleEnded
	}
	running := sale.IsRunning(now)

	plan := committer.NewPlan()

	for _, productID := range req.ProductIDs {
		if sale.ContainsProduct(productID) {
			return domain.ErrProductAlreadyInSale
		}

		product, err := i.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if !product.OwnedBy(req.CallerID) {
			return domain.ErrNotOwner
		}
		if !product.Eligible() {
			return domain.ErrProductNotEligible
		}

		pct, ok := sale.CategoryPercent(product.CategoryID())
		if !ok {
			return domain.ErrCategoryNotInSale
		}

		if err := sale.AddProduct(productID); err != nil {
			return err
		}

		if running {
			product.ApplySaleDiscount(pct)
			mut, err := i.products.UpdateMut(product)
			if err != nil {
				return err
			}
			plan.Add(mut)
		}

		if err := i.joinBundles(ctx, sale, productID, running, now, plan); err != nil {
			return err
		}
	}

	saleMut, err := i.sales.UpdateMut(sale)
	if err != nil {
		return err
	}
	plan.Add(saleMut)

	err = i.committer.ApplyWithVersionCheck(ctx, m_sale.TableName, sale.ID(), sale.Version(), plan)
	if errors.Is(err, committer.ErrVersionConflict) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// joinBundles pulls every eligible bundle containing the product into the
// sale. A running sale re-prices the bundle as the rounded discounted sum of
// its members' selling prices, at the best rate among member categories.
func (i *Interactor) joinBundles(ctx context.Context, sale *domain.Sale, productID string, running bool, now time.Time, plan *committer.CommitPlan) error {
	bundles, err := i.bundles.FindContainingProduct(ctx, productID)
	if err != nil {
		return err
	}

	for _, bundle := range bundles {
		if !bundle.Eligible() || sale.ContainsBundle(bundle.ID()) {
			continue
		}
		sale.AddBundle(bundle.ID())

		if !running {
			continue
		}

		memberTotal, categoryIDs, err := i.memberTotals(ctx, bundle)
		if err != nil {
			return err
		}
		pct := sale.MaxPercentFor(categoryIDs)
		bundle.ApplySaleDiscount(memberTotal, pct)

		mut, err := i.bundles.UpdateMut(bundle)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}
	return nil
}

// memberTotals sums member selling prices, one per member regardless of line
// quantity, and collects the member category ids.
func (i *Interactor) memberTotals(ctx context.Context, bundle *domain.Bundle) (*domain.Money, []string, error) {
	ids := make([]string, 0, bundle.MemberCount())
	for _, line := range bundle.Lines() {
		ids = append(ids, line.ProductID)
	}

	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	total := domain.Zero()
	var categoryIDs []string
	for _, line := range bundle.Lines() {
		member, ok := members[line.ProductID]
		if !ok || member.IsDeleted() {
			continue
		}
		total = total.Add(member.SellingPrice())
		if cid := member.CategoryID(); cid != "" {
			categoryIDs = append(categoryIDs, cid)
		}
	}
	return total, categoryIDs, nil
}

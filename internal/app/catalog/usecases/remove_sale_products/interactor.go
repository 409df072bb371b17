package remove_sale_products

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_sale"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

// Request contains the products a seller is pulling out of a sale.
type Request struct {
	CallerID   string
	SaleID     string
	ProductIDs []string
}

// Response enumerates what actually happened; removal is partial-success by
// design so sellers can retry a mixed batch without unwinding the rest.
type Response struct {
	RemovedProducts  []string
	NotFoundProducts []string
	RemovedBundles   []string
	UpdatedBundles   []string
}

// Interactor handles the remove sale products use case.
type Interactor struct {
	sales     contracts.SaleRepository
	products  contracts.ProductRepository
	bundles   contracts.BundleRepository
	committer contracts.Committer
	clock     clock.Clock
	log       *logger.Logger
}

// NewInteractor creates a new remove sale products interactor.
func NewInteractor(
	sales contracts.SaleRepository,
	products contracts.ProductRepository,
	bundles contracts.BundleRepository,
	cmt contracts.Committer,
	clk clock.Clock,
	log *logger.Logger,
) *Interactor {
	return &Interactor{
		sales:     sales,
		products:  products,
		bundles:   bundles,
		committer: cmt,
		clock:     clk,
		log:       log,
	}
}

// Execute pulls products out of a sale, restoring each product's pre-sale
// selling price by reversing the recorded percentage. Products that are not
// in the sale, no longer resolve, or belong to another seller land in
// NotFoundProducts instead of failing the batch. Single-member bundles drop
// out of the sale entirely; the rest are re-priced as the sum of the
// remaining members' reversed selling prices.
//
// The forward application rounds, so a reversed price can differ from the
// original by a rounding unit.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CallerID == "" {
		return nil, domain.ErrUnauthorized
	}

	sale, err := i.sales.GetByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale.HasEnded(i.clock.Now()) {
		return nil, domain.ErrSaleEnded
	}

	resp := &Response{}
	plan := committer.NewPlan()
	touched := make(map[string]*domain.Product)

	for _, productID := range req.ProductIDs {
		if !sale.ContainsProduct(productID) {
			resp.NotFoundProducts = append(resp.NotFoundProducts, productID)
			continue
		}

		product, err := i.products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				sale.RemoveProduct(productID)
				resp.NotFoundProducts = append(resp.NotFoundProducts, productID)
				continue
			}
			return nil, err
		}
		if !product.OwnedBy(req.CallerID) {
			resp.NotFoundProducts = append(resp.NotFoundProducts, productID)
			continue
		}

		if pct := product.AdminDiscount(); pct != nil {
			if err := product.ReverseSaleDiscount(*pct); err != nil {
				i.log.Warn("cannot reverse sale discount, leaving price as-is",
					"product_id", productID, "percent", *pct)
			}
		}

		sale.RemoveProduct(productID)
		resp.RemovedProducts = append(resp.RemovedProducts, productID)
		touched[productID] = product

		mut, err := i.products.UpdateMut(product)
		if err != nil {
			return nil, err
		}
		plan.Add(mut)

		if err := i.settleBundles(ctx, sale, product, touched, resp, plan); err != nil {
			return nil, err
		}
	}

	saleMut, err := i.sales.UpdateMut(sale)
	if err != nil {
		return nil, err
	}
	plan.Add(saleMut)

	err = i.committer.ApplyWithVersionCheck(ctx, m_sale.TableName, sale.ID(), sale.Version(), plan)
	if errors.Is(err, committer.ErrVersionConflict) {
		return nil, domain.ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return resp, nil
}

// settleBundles revisits the sale bundles containing the removed product.
// A single-member bundle has nothing left in the sale and drops out; larger
// bundles get a fresh selling price from the remaining members' reversed
// prices.
func (i *Interactor) settleBundles(ctx context.Context, sale *domain.Sale, removed *domain.Product, touched map[string]*domain.Product, resp *Response, plan *committer.CommitPlan) error {
	bundles, err := i.bundles.FindContainingProduct(ctx, removed.ID())
	if err != nil {
		return err
	}

	for _, bundle := range bundles {
		if !sale.ContainsBundle(bundle.ID()) {
			continue
		}

		if bundle.MemberCount() <= 1 {
			sale.RemoveBundle(bundle.ID())
			resp.RemovedBundles = append(resp.RemovedBundles, bundle.ID())
			continue
		}

		total, err := i.reversedMemberTotal(ctx, sale, bundle, removed.ID(), touched)
		if err != nil {
			return err
		}
		bundle.SetSellingPrice(total)
		resp.UpdatedBundles = append(resp.UpdatedBundles, bundle.ID())

		mut, err := i.bundles.UpdateMut(bundle)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}
	return nil
}

// reversedMemberTotal sums the remaining members' pre-sale selling prices,
// skipping the removed product. A member still carrying a sale percentage is
// reversed at its category's rate (zero when its category is not in the
// sale); a member already restored in this batch passes through unchanged.
func (i *Interactor) reversedMemberTotal(ctx context.Context, sale *domain.Sale, bundle *domain.Bundle, removedID string, touched map[string]*domain.Product) (*domain.Money, error) {
	ids := make([]string, 0, bundle.MemberCount())
	for _, line := range bundle.Lines() {
		ids = append(ids, line.ProductID)
	}

	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	pricing := domain.NewPricingCalculator()
	total := domain.Zero()
	for _, line := range bundle.Lines() {
		if line.ProductID == removedID {
			continue
		}
		member := members[line.ProductID]
		if fresh, ok := touched[line.ProductID]; ok {
			member = fresh
		}
		if member == nil || member.IsDeleted() {
			continue
		}

		price := member.SellingPrice()
		if member.AdminDiscount() != nil {
			pct, _ := sale.CategoryPercent(member.CategoryID())
			reversed, err := pricing.ReverseSalePercent(price, pct)
			if err != nil {
				i.log.Warn("cannot reverse sale discount for bundle member, using current price",
					"bundle_id", bundle.ID(), "product_id", line.ProductID, "percent", pct)
			} else {
				price = reversed
			}
		}
		total = total.Add(price)
	}
	return total, nil
}

package update_bundle

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_bundle"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the fields to update. Membership is add-only: AddLines
// merges new members in, removal goes through its own operation.
type Request struct {
	CallerID string
	BundleID string

	Name            *string
	Description     *string
	DiscountPercent *int64
	AddLines        []domain.BundleLine
}

// Interactor handles the update bundle use case.
type Interactor struct {
	bundles   contracts.BundleRepository
	products  contracts.ProductRepository
	discounts contracts.DiscountRepository
	committer contracts.Committer
	clock     clock.Clock
}

// NewInteractor creates a new update bundle interactor.
func NewInteractor(
	bundles contracts.BundleRepository,
	products contracts.ProductRepository,
	discounts contracts.DiscountRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		bundles:   bundles,
		products:  products,
		discounts: discounts,
		committer: cmt,
		clock:     clk,
	}
}

// Execute applies a partial update to a bundle and re-prices it from the
// merged membership. A duplicate member in AddLines rejects the request with
// the bundle untouched.
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
	if !bundle.Eligible() {
		return domain.ErrProductNotEligible
	}

	if req.Name != nil {
		if err := bundle.SetName(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := bundle.SetDescription(*req.Description); err != nil {
			return err
		}
	}
	if req.DiscountPercent != nil {
		if err := bundle.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return err
		}
	}

	plan := committer.NewPlan()

	var newMembers map[string]*domain.Product
	if len(req.AddLines) > 0 {
		ids := make([]string, len(req.AddLines))
		for idx, line := range req.AddLines {
			ids[idx] = line.ProductID
		}
		newMembers, err = i.products.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, line := range req.AddLines {
			member, ok := newMembers[line.ProductID]
			if !ok || !member.OwnedBy(req.CallerID) || !member.Eligible() {
				return domain.ErrBundleMemberNotOwned
			}
		}
		if err := bundle.AddLines(req.AddLines); err != nil {
			return err
		}
	}

	// Every price input may have moved: membership, the bundle discount,
	// or a member's MRP since the last write. Recompute from live rows.
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

	for _, line := range req.AddLines {
		member := newMembers[line.ProductID]
		member.AddBundleRef(bundle.ID())
		mut, err := i.products.UpdateMut(member)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	updateMut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(updateMut)

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
	for id, member := range members {
		if member.IsDeleted() {
			continue
		}
		prices[id] = member.MRP()
	}
	return prices, nil
}

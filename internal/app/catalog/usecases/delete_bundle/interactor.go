package delete_bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_bundle"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request identifies the bundle to delete.
type Request struct {
	CallerID string
	BundleID string
}

// Interactor handles the delete bundle use case.
type Interactor struct {
	bundles    contracts.BundleRepository
	products   contracts.ProductRepository
	discounts  contracts.DiscountRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new delete bundle interactor.
func NewInteractor(
	bundles contracts.BundleRepository,
	products contracts.ProductRepository,
	discounts contracts.DiscountRepository,
	outboxRepo contracts.OutboxRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		bundles:    bundles,
		products:   products,
		discounts:  discounts,
		outboxRepo: outboxRepo,
		committer:  cmt,
		clock:      clk,
	}
}

// Execute soft-deletes a bundle, unsets every member's back-reference and
// drops the discounts targeting it, all in one commit.
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

	now := i.clock.Now()
	bundle.SoftDelete(now)

	plan := committer.NewPlan()

	bundleMut, err := i.bundles.UpdateMut(bundle)
	if err != nil {
		return err
	}
	plan.Add(bundleMut)

	ids := make([]string, 0, bundle.MemberCount())
	for _, line := range bundle.Lines() {
		ids = append(ids, line.ProductID)
	}
	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, member := range members {
		member.RemoveBundleRef(bundle.ID())
		mut, err := i.products.UpdateMut(member)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	targeting, err := i.discounts.FindByTarget(ctx, domain.BundleTarget(bundle.ID()))
	if err != nil {
		return err
	}
	for _, d := range targeting {
		plan.Add(i.discounts.DeleteMut(d.ID()))
	}

	for _, event := range bundle.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, string(payload))
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
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

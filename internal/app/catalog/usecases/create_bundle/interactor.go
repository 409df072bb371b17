package create_bundle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Request contains the data needed to create a bundle.
type Request struct {
	SellerID        string
	Name            string
	Description     string
	Lines           []domain.BundleLine
	DiscountPercent int64
}

// Interactor handles the create bundle use case.
type Interactor struct {
	bundles    contracts.BundleRepository
	products   contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create bundle interactor.
func NewInteractor(
	bundles contracts.BundleRepository,
	products contracts.ProductRepository,
	outboxRepo contracts.OutboxRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		bundles:    bundles,
		products:   products,
		outboxRepo: outboxRepo,
		committer:  cmt,
		clock:      clk,
	}
}

// Execute creates a bundle from the seller's own products. Every member must
// exist, belong to the caller and be eligible; one bad member rejects the
// whole request, never a partial bundle.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	if req.SellerID == "" {
		return "", domain.ErrUnauthorized
	}
	if len(req.Lines) == 0 {
		return "", domain.ErrEmptyBundle
	}

	ids := make([]string, len(req.Lines))
	for idx, line := range req.Lines {
		ids[idx] = line.ProductID
	}

	members, err := i.products.GetByIDs(ctx, ids)
	if err != nil {
		return "", err
	}

	prices := make(map[string]*domain.Money, len(req.Lines))
	for _, line := range req.Lines {
		member, ok := members[line.ProductID]
		if !ok || !member.OwnedBy(req.SellerID) || !member.Eligible() {
			return "", domain.ErrBundleMemberNotOwned
		}
		prices[line.ProductID] = member.MRP()
	}

	bundleID := uuid.New().String()
	now := i.clock.Now()

	bundle, err := domain.NewBundle(
		bundleID,
		req.SellerID,
		req.Name,
		req.Description,
		req.Lines,
		req.DiscountPercent,
		prices,
		now,
		i.clock,
	)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()

	insertMut, err := i.bundles.InsertMut(bundle)
	if err != nil {
		return "", err
	}
	plan.Add(insertMut)

	// Back-references land in the same commit so membership is never
	// observable from one side only.
	for _, line := range req.Lines {
		member := members[line.ProductID]
		member.AddBundleRef(bundle.ID())
		mut, err := i.products.UpdateMut(member)
		if err != nil {
			return "", err
		}
		plan.Add(mut)
	}

	for _, event := range bundle.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, string(payload))
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bundle.ID(), nil
}

package create_product

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

// Request contains the data needed to create a product.
type Request struct {
	SellerID        string
	Name            string
	Description     string
	MRP             *domain.Money
	DiscountPercent int64
	Quantity        int64
	CategoryID      string
}

// Interactor handles the create product use case.
type Interactor struct {
	products   contracts.ProductRepository
	categories contracts.CategoryRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	products contracts.ProductRepository,
	categories contracts.CategoryRepository,
	outboxRepo contracts.OutboxRepository,
	cmt contracts.Committer,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		products:   products,
		categories: categories,
		outboxRepo: outboxRepo,
		committer:  cmt,
		clock:      clk,
	}
}

// Execute creates a new product. Validation runs field by field in a fixed
// order and the first failure wins.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	if req.SellerID == "" {
		return "", domain.ErrUnauthorized
	}

	productID := uuid.New().String()
	now := i.clock.Now()

	// The constructor validates the fields in their fixed order; only a
	// well-formed product is worth the uniqueness and category lookups.
	product, err := domain.NewProduct(
		productID,
		req.SellerID,
		req.Name,
		req.Description,
		req.MRP,
		req.DiscountPercent,
		req.Quantity,
		req.CategoryID,
		now,
		i.clock,
	)
	if err != nil {
		return "", err
	}

	taken, err := i.products.NameTaken(ctx, req.SellerID, req.Name)
	if err != nil {
		return "", fmt.Errorf("failed to check product name: %w", err)
	}
	if taken {
		return "", domain.ErrProductNameTaken
	}

	var category *domain.Category
	if req.CategoryID != "" {
		category, err = i.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return "", err
		}
	}

	plan := committer.NewPlan()

	insertMut, err := i.products.InsertMut(product)
	if err != nil {
		return "", err
	}
	plan.Add(insertMut)

	if category != nil {
		category.AddProduct(product.ID())
		categoryMut, err := i.categories.UpdateMut(category)
		if err != nil {
			return "", err
		}
		plan.Add(categoryMut)
	}

	for _, event := range product.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return product.ID(), nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

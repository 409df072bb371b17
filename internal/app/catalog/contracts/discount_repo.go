package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// DiscountRepository defines the interface for discount persistence.
type DiscountRepository interface {
	// InsertMut creates a mutation for inserting a new discount.
	InsertMut(discount *domain.Discount) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a discount (only dirty fields).
	UpdateMut(discount *domain.Discount) (*spanner.Mutation, error)

	// DeleteMut creates a mutation removing the discount record.
	DeleteMut(discountID string) *spanner.Mutation

	// GetByID retrieves a discount by ID.
	GetByID(ctx context.Context, discountID string) (*domain.Discount, error)

	// GetByIDs retrieves discounts by id, preserving the order of the
	// input slice and skipping ids that no longer resolve. Fold order
	// over attached discounts depends on this ordering.
	GetByIDs(ctx context.Context, discountIDs []string) ([]*domain.Discount, error)

	// FindByTarget returns all discounts attached to the given target.
	FindByTarget(ctx context.Context, target domain.Target) ([]*domain.Discount, error)
}

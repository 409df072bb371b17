package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// BundleRepository defines the interface for bundle persistence.
type BundleRepository interface {
	// InsertMut creates a mutation for inserting a new bundle.
	InsertMut(bundle *domain.Bundle) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a bundle (only dirty fields).
	UpdateMut(bundle *domain.Bundle) (*spanner.Mutation, error)

	// GetByID retrieves a bundle by ID, reconstructing the domain aggregate.
	GetByID(ctx context.Context, bundleID string) (*domain.Bundle, error)

	// GetByIDs retrieves the bundles that exist among the given ids,
	// keyed by id.
	GetByIDs(ctx context.Context, bundleIDs []string) (map[string]*domain.Bundle, error)

	// FindContainingProduct returns all live bundles whose membership
	// includes the product. Used by delete cascades and sale joins.
	FindContainingProduct(ctx context.Context, productID string) ([]*domain.Bundle, error)
}

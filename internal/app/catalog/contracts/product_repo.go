package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// ProductRepository defines the interface for product persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type ProductRepository interface {
	// InsertMut creates a mutation for inserting a new product.
	// Returns error if money values exceed int64 bounds.
	InsertMut(product *domain.Product) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a product (only dirty fields).
	// Returns error if money values exceed int64 bounds.
	UpdateMut(product *domain.Product) (*spanner.Mutation, error)

	// GetByID retrieves a product by ID, reconstructing the domain aggregate.
	// Soft-deleted products are returned; callers decide whether deletion
	// matters for their operation.
	GetByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetByIDs retrieves the products that exist among the given ids,
	// keyed by id. Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, productIDs []string) (map[string]*domain.Product, error)

	// NameTaken reports whether the seller already has a live product
	// with this name.
	NameTaken(ctx context.Context, sellerID, name string) (bool, error)
}

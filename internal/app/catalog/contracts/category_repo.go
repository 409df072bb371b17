package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// CategoryRepository defines the interface for category persistence.
// Categories are platform-curated; the service only updates membership.
type CategoryRepository interface {
	// UpdateMut creates a mutation for updating a category (only dirty fields).
	UpdateMut(category *domain.Category) (*spanner.Mutation, error)

	// GetByID retrieves a category by ID. Inactive categories return
	// domain.ErrCategoryNotFound.
	GetByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// GetByIDs retrieves the categories that exist among the given ids,
	// keyed by id.
	GetByIDs(ctx context.Context, categoryIDs []string) (map[string]*domain.Category, error)
}

package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// SaleRepository defines the interface for sale persistence.
type SaleRepository interface {
	// InsertMut creates a mutation for inserting a new sale.
	InsertMut(sale *domain.Sale) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a sale (only dirty fields).
	UpdateMut(sale *domain.Sale) (*spanner.Mutation, error)

	// GetByID retrieves a sale by ID.
	GetByID(ctx context.Context, saleID string) (*domain.Sale, error)
}

package get_sale

import (
	"context"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
)

// Request contains the sale ID to retrieve.
type Request struct {
	SaleID string
}

// Query handles the get sale query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get sale query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a sale by ID with its categories, products and bundles
// resolved to display shapes.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.SaleDTO, error) {
	return q.readModel.GetSaleByID(ctx, req.SaleID)
}

package list_products

import (
	"context"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// Request contains filtering and pagination parameters.
type Request struct {
	SellerID   string
	CategoryID string
	ActiveOnly bool
	PageSize   int
	PageToken  string
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated list of products with filtering. A first page
// with no matches at all is reported as not found rather than as an empty
// list.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductListResult, error) {
	filter := &contracts.ProductListFilter{
		SellerID:   req.SellerID,
		CategoryID: req.CategoryID,
		ActiveOnly: req.ActiveOnly,
		PageSize:   req.PageSize,
		PageToken:  req.PageToken,
	}

	result, err := q.readModel.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(result.Products) == 0 && req.PageToken == "" {
		return nil, domain.ErrProductNotFound
	}
	return result, nil
}

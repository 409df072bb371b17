package list_bundles

import (
	"context"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	SellerID  string
	PageSize  int
	PageToken string
}

// Query handles the list bundles query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list bundles query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated list of bundles with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.BundleListResult, error) {
	filter := &contracts.BundleListFilter{
		SellerID:  req.SellerID,
		PageSize:  req.PageSize,
		PageToken: req.PageToken,
	}

	return q.readModel.ListBundles(ctx, filter)
}

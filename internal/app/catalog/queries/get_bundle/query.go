package get_bundle

import (
	"context"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
)

// Request contains the bundle ID to retrieve.
type Request struct {
	BundleID string
}

// Query handles the get bundle query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get bundle query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a bundle by ID with member names and discounts resolved.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.BundleDTO, error) {
	return q.readModel.GetBundleByID(ctx, req.BundleID)
}

package contracts

import (
	"context"

	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

// Committer applies commit plans. Usecases depend on this rather than the
// concrete Spanner committer so tests can capture plans without a database.
type Committer interface {
	// Apply commits the plan atomically.
	Apply(ctx context.Context, plan *committer.CommitPlan) error

	// ApplyWithVersionCheck commits the plan only if the row's version
	// column still equals expectedVersion. Returns
	// committer.ErrVersionConflict on mismatch.
	ApplyWithVersionCheck(ctx context.Context, table, id string, expectedVersion int64, plan *committer.CommitPlan) error
}

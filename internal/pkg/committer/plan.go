// Package committer collects Spanner mutations into commit plans and applies
// them atomically.
//
// The flow in a usecase is:
//
//	// 1. Load aggregate from repository
//	product, err := repo.GetByID(ctx, productID)
//
//	// 2. Call domain methods (pure business logic)
//	if err := product.SetMRP(mrp); err != nil {
//	    return err
//	}
//
//	// 3. Repository returns mutations (doesn't apply them)
//	plan := committer.NewPlan()
//	plan.Add(repo.UpdateMut(product))
//
//	// 4. Add outbox events to the same plan
//	for _, event := range product.DomainEvents() {
//	    plan.Add(outboxRepo.CreateMut(event))
//	}
//
//	// 5. Apply everything atomically
//	return committer.Apply(ctx, plan)
//
// Cross-aggregate cascades (a product delete re-pricing its bundles and
// updating its category) ride in one plan and therefore one transaction.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when an optimistic version check fails
// because another writer committed first.
var ErrVersionConflict = errors.New("version conflict: concurrent modification detected")

// CommitPlan is a typed wrapper around Spanner mutations.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithReadWriteTransaction executes the CommitPlan within a read-write transaction.
// This is useful when you need to perform reads before building mutations.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithVersionCheck executes the CommitPlan with optimistic locking.
// It re-reads the row's version column inside the transaction and only
// applies the plan if it still matches expectedVersion, the version the
// aggregate had when it was loaded. Returns ErrVersionConflict otherwise.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, table, id string, expectedVersion int64, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, table, spanner.Key{id}, []string{"version"})
		if err != nil {
			return fmt.Errorf("failed to read %s version: %w", table, err)
		}

		var currentVersion int64
		if err := row.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if currentVersion != expectedVersion {
			return fmt.Errorf("%w: expected %d, got %d", ErrVersionConflict, expectedVersion, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}

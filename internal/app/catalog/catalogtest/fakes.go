// Package catalogtest provides in-memory fakes for usecase tests. The fakes
// honor the repository contracts closely enough to exercise cascade and
// pricing logic without a Spanner emulator.
package catalogtest

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_outbox"
	"github.com/light-bringer/sellerhub-service/internal/pkg/committer"
)

func marker(table, id string) *spanner.Mutation {
	return spanner.InsertOrUpdate(table, []string{"id"}, []interface{}{id})
}

// FakeProducts is an in-memory ProductRepository.
type FakeProducts struct {
	Items map[string]*domain.Product
}

// NewFakeProducts creates an empty fake product repository.
func NewFakeProducts() *FakeProducts {
	return &FakeProducts{Items: make(map[string]*domain.Product)}
}

// Put stores a product under its own ID.
func (f *FakeProducts) Put(p *domain.Product) { f.Items[p.ID()] = p }

func (f *FakeProducts) InsertMut(p *domain.Product) (*spanner.Mutation, error) {
	f.Items[p.ID()] = p
	return marker("products", p.ID()), nil
}

func (f *FakeProducts) UpdateMut(p *domain.Product) (*spanner.Mutation, error) {
	return marker("products", p.ID()), nil
}

func (f *FakeProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := f.Items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *FakeProducts) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := f.Items[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *FakeProducts) NameTaken(ctx context.Context, sellerID, name string) (bool, error) {
	for _, p := range f.Items {
		if p.SellerID() == sellerID && p.Name() == name && !p.IsDeleted() {
			return true, nil
		}
	}
	return false, nil
}

// FakeBundles is an in-memory BundleRepository.
type FakeBundles struct {
	Items map[string]*domain.Bundle
}

// NewFakeBundles creates an empty fake bundle repository.
func NewFakeBundles() *FakeBundles {
	return &FakeBundles{Items: make(map[string]*domain.Bundle)}
}

// Put stores a bundle under its own ID.
func (f *FakeBundles) Put(b *domain.Bundle) { f.Items[b.ID()] = b }

func (f *FakeBundles) InsertMut(b *domain.Bundle) (*spanner.Mutation, error) {
	f.Items[b.ID()] = b
	return marker("bundles", b.ID()), nil
}

func (f *FakeBundles) UpdateMut(b *domain.Bundle) (*spanner.Mutation, error) {
	return marker("bundles", b.ID()), nil
}

func (f *FakeBundles) GetByID(ctx context.Context, id string) (*domain.Bundle, error) {
	b, ok := f.Items[id]
	if !ok {
		return nil, domain.ErrBundleNotFound
	}
	return b, nil
}

func (f *FakeBundles) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Bundle, error) {
	out := make(map[string]*domain.Bundle)
	for _, id := range ids {
		if b, ok := f.Items[id]; ok {
			out[id] = b
		}
	}
	return out, nil
}

func (f *FakeBundles) FindContainingProduct(ctx context.Context, productID string) ([]*domain.Bundle, error) {
	var out []*domain.Bundle
	for _, b := range f.Items {
		if !b.IsDeleted() && b.ContainsProduct(productID) {
			out = append(out, b)
		}
	}
	return out, nil
}

// FakeDiscounts is an in-memory DiscountRepository.
type FakeDiscounts struct {
	Items   map[string]*domain.Discount
	Deleted []string
}

// NewFakeDiscounts creates an empty fake discount repository.
func NewFakeDiscounts() *FakeDiscounts {
	return &FakeDiscounts{Items: make(map[string]*domain.Discount)}
}

// Put stores a discount under its own ID.
func (f *FakeDiscounts) Put(d *domain.Discount) { f.Items[d.ID()] = d }

func (f *FakeDiscounts) InsertMut(d *domain.Discount) (*spanner.Mutation, error) {
	f.Items[d.ID()] = d
	return marker("discounts", d.ID()), nil
}

func (f *FakeDiscounts) UpdateMut(d *domain.Discount) (*spanner.Mutation, error) {
	return marker("discounts", d.ID()), nil
}

func (f *FakeDiscounts) DeleteMut(id string) *spanner.Mutation {
	f.Deleted = append(f.Deleted, id)
	return spanner.Delete("discounts", spanner.Key{id})
}

func (f *FakeDiscounts) GetByID(ctx context.Context, id string) (*domain.Discount, error) {
	d, ok := f.Items[id]
	if !ok {
		return nil, domain.ErrDiscountNotFound
	}
	return d, nil
}

func (f *FakeDiscounts) GetByIDs(ctx context.Context, ids []string) ([]*domain.Discount, error) {
	out := make([]*domain.Discount, 0, len(ids))
	for _, id := range ids {
		if d, ok := f.Items[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *FakeDiscounts) FindByTarget(ctx context.Context, target domain.Target) ([]*domain.Discount, error) {
	var out []*domain.Discount
	for _, d := range f.Items {
		if d.Target() == target {
			out = append(out, d)
		}
	}
	return out, nil
}

// FakeCategories is an in-memory CategoryRepository.
type FakeCategories struct {
	Items map[string]*domain.Category
}

// NewFakeCategories creates an empty fake category repository.
func NewFakeCategories() *FakeCategories {
	return &FakeCategories{Items: make(map[string]*domain.Category)}
}

// Put stores a category under its own ID.
func (f *FakeCategories) Put(c *domain.Category) { f.Items[c.ID()] = c }

func (f *FakeCategories) UpdateMut(c *domain.Category) (*spanner.Mutation, error) {
	return marker("categories", c.ID()), nil
}

func (f *FakeCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := f.Items[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (f *FakeCategories) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Category, error) {
	out := make(map[string]*domain.Category)
	for _, id := range ids {
		if c, ok := f.Items[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

// FakeSales is an in-memory SaleRepository.
type FakeSales struct {
	Items map[string]*domain.Sale
}

// NewFakeSales creates an empty fake sale repository.
func NewFakeSales() *FakeSales {
	return &FakeSales{Items: make(map[string]*domain.Sale)}
}

// Put stores a sale under its own ID.
func (f *FakeSales) Put(s *domain.Sale) { f.Items[s.ID()] = s }

func (f *FakeSales) InsertMut(s *domain.Sale) (*spanner.Mutation, error) {
	f.Items[s.ID()] = s
	return marker("sales", s.ID()), nil
}

func (f *FakeSales) UpdateMut(s *domain.Sale) (*spanner.Mutation, error) {
	return marker("sales", s.ID()), nil
}

func (f *FakeSales) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	s, ok := f.Items[id]
	if !ok || s.IsDeleted() {
		return nil, domain.ErrSaleNotFound
	}
	return s, nil
}

// FakeOutbox is an in-memory OutboxRepository recording enriched events.
type FakeOutbox struct {
	Events []*contracts.OutboxEvent
}

// NewFakeOutbox creates an empty fake outbox repository.
func NewFakeOutbox() *FakeOutbox {
	return &FakeOutbox{}
}

func (f *FakeOutbox) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	f.Events = append(f.Events, event)
	return marker("outbox_events", event.EventID)
}

func (f *FakeOutbox) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// VersionCheck records one optimistic-lock commit attempt.
type VersionCheck struct {
	Table           string
	ID              string
	ExpectedVersion int64
}

// FakeCommitter captures commit plans instead of applying them. Set Err to
// force every commit to fail, or Conflict to simulate a lost version race.
type FakeCommitter struct {
	Plans    []*committer.CommitPlan
	Checks   []VersionCheck
	Err      error
	Conflict bool
}

// NewFakeCommitter creates an empty fake committer.
func NewFakeCommitter() *FakeCommitter {
	return &FakeCommitter{}
}

func (f *FakeCommitter) Apply(ctx context.Context, plan *committer.CommitPlan) error {
	if f.Err != nil {
		return f.Err
	}
	f.Plans = append(f.Plans, plan)
	return nil
}

func (f *FakeCommitter) ApplyWithVersionCheck(ctx context.Context, table, id string, expectedVersion int64, plan *committer.CommitPlan) error {
	f.Checks = append(f.Checks, VersionCheck{Table: table, ID: id, ExpectedVersion: expectedVersion})
	if f.Conflict {
		return committer.ErrVersionConflict
	}
	if f.Err != nil {
		return f.Err
	}
	f.Plans = append(f.Plans, plan)
	return nil
}

// LastPlan returns the most recently committed plan, or nil.
func (f *FakeCommitter) LastPlan() *committer.CommitPlan {
	if len(f.Plans) == 0 {
		return nil
	}
	return f.Plans[len(f.Plans)-1]
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_category"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

// CategoryRepo implements CategoryRepository for Spanner.
type CategoryRepo struct {
	client *spanner.Client
	model  *m_category.Model
	clock  clock.Clock
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(client *spanner.Client, clk clock.Clock) contracts.CategoryRepository {
	return &CategoryRepo{
		client: client,
		model:  m_category.NewModel(),
		clock:  clk,
	}
}

// UpdateMut creates a mutation for updating a category (only dirty fields).
func (r *CategoryRepo) UpdateMut(category *domain.Category) (*spanner.Mutation, error) {
	changes := category.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldProductIDs) {
		updates[m_category.ProductIDs] = category.ProductIDs()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_category.UpdatedAt] = r.clock.Now()

	return r.model.UpdateMut(category.ID(), updates), nil
}

// GetByID retrieves a category by ID. Inactive categories are invisible.
func (r *CategoryRepo) GetByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	row, err := r.client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, m_category.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	if !data.IsActive {
		return nil, domain.ErrCategoryNotFound
	}

	return r.dataToDomain(&data), nil
}

// GetByIDs retrieves the active categories that exist among the given ids.
func (r *CategoryRepo) GetByIDs(ctx context.Context, categoryIDs []string) (map[string]*domain.Category, error) {
	result := make(map[string]*domain.Category, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return result, nil
	}

	stmt := query.From(m_category.TableName).
		Select(m_category.Columns()...).
		Where(query.In(m_category.CategoryID, categoryIDs)).
		Where(query.Eq(m_category.IsActive, true)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query categories: %w", err)
		}

		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}

		category := r.dataToDomain(&data)
		result[category.ID()] = category
	}

	return result, nil
}

func (r *CategoryRepo) dataToDomain(data *m_category.Data) *domain.Category {
	return domain.ReconstructCategory(
		data.CategoryID,
		data.Name,
		data.Description,
		data.ProductIDs,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	)
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_sale"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

// SaleRepo implements SaleRepository for Spanner.
type SaleRepo struct {
	client *spanner.Client
	model  *m_sale.Model
	clock  clock.Clock
}

// NewSaleRepo creates a new SaleRepo.
func NewSaleRepo(client *spanner.Client, clk clock.Clock) contracts.SaleRepository {
	return &SaleRepo{
		client: client,
		model:  m_sale.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new sale.
func (r *SaleRepo) InsertMut(sale *domain.Sale) (*spanner.Mutation, error) {
	return r.model.InsertMut(r.domainToData(sale)), nil
}

// UpdateMut creates a mutation for updating a sale (only dirty fields).
func (r *SaleRepo) UpdateMut(sale *domain.Sale) (*spanner.Mutation, error) {
	changes := sale.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldSaleProducts) {
		updates[m_sale.ProductIDs] = sale.ProductIDs()
	}

	if changes.Dirty(domain.FieldSaleBundles) {
		updates[m_sale.BundleIDs] = sale.BundleIDs()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_sale.UpdatedAt] = r.clock.Now()
	updates[m_sale.Version] = sale.Version() + 1

	return r.model.UpdateMut(sale.ID(), updates), nil
}

// GetByID retrieves a sale by ID. Deleted sales are invisible.
func (r *SaleRepo) GetByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	row, err := r.client.Single().ReadRow(ctx, m_sale.TableName, spanner.Key{saleID}, m_sale.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to read sale: %w", err)
	}

	var data m_sale.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse sale: %w", err)
	}
	if data.IsDeleted {
		return nil, domain.ErrSaleNotFound
	}

	return r.dataToDomain(&data), nil
}

func (r *SaleRepo) domainToData(sale *domain.Sale) *m_sale.Data {
	categories := sale.Categories()
	categoryIDs := make([]string, len(categories))
	categoryDiscounts := make([]int64, len(categories))
	for i, sc := range categories {
		categoryIDs[i] = sc.CategoryID
		categoryDiscounts[i] = sc.Percent
	}

	return &m_sale.Data{
		SaleID:            sale.ID(),
		Name:              sale.Name(),
		CategoryIDs:       categoryIDs,
		CategoryDiscounts: categoryDiscounts,
		ProductIDs:        sale.ProductIDs(),
		BundleIDs:         sale.BundleIDs(),
		StartDate:         sale.StartDate(),
		EndDate:           sale.EndDate(),
		IsDeleted:         sale.IsDeleted(),
		Version:           sale.Version(),
		CreatedAt:         sale.CreatedAt(),
		UpdatedAt:         sale.UpdatedAt(),
	}
}

func (r *SaleRepo) dataToDomain(data *m_sale.Data) *domain.Sale {
	categories := make([]domain.SaleCategory, len(data.CategoryIDs))
	for i, cid := range data.CategoryIDs {
		pct := int64(0)
		if i < len(data.CategoryDiscounts) {
			pct = data.CategoryDiscounts[i]
		}
		categories[i] = domain.SaleCategory{CategoryID: cid, Percent: pct}
	}

	return domain.ReconstructSale(
		data.SaleID,
		data.Name,
		categories,
		data.ProductIDs,
		data.BundleIDs,
		data.StartDate,
		data.EndDate,
		data.IsDeleted,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	)
}

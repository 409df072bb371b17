package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_product"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
	clock  clock.Clock
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, clk clock.Clock) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	data, err := r.domainToData(product)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}

	if changes.Dirty(domain.FieldMRP) {
		num, denom, err := moneyColumns(product.MRP())
		if err != nil {
			return nil, fmt.Errorf("mrp: %w", err)
		}
		updates[m_product.MRPNumerator] = num
		updates[m_product.MRPDenominator] = denom
	}

	if changes.Dirty(domain.FieldDiscountPercent) {
		updates[m_product.DiscountPercent] = product.DiscountPercent()
	}

	if changes.Dirty(domain.FieldSellingPrice) {
		num, denom, err := moneyColumns(product.SellingPrice())
		if err != nil {
			return nil, fmt.Errorf("selling price: %w", err)
		}
		updates[m_product.SellingPriceNumerator] = num
		updates[m_product.SellingPriceDenominator] = denom
	}

	if changes.Dirty(domain.FieldFinalPrice) {
		num, denom, err := moneyColumns(product.FinalPrice())
		if err != nil {
			return nil, fmt.Errorf("final price: %w", err)
		}
		updates[m_product.FinalPriceNumerator] = num
		updates[m_product.FinalPriceDenominator] = denom
	}

	if changes.Dirty(domain.FieldDiscountIDs) {
		updates[m_product.DiscountIDs] = product.DiscountIDs()
	}

	if changes.Dirty(domain.FieldCategoryID) {
		updates[m_product.CategoryID] = nullString(product.CategoryID())
	}

	if changes.Dirty(domain.FieldBundleIDs) {
		updates[m_product.BundleIDs] = product.BundleIDs()
	}

	if changes.Dirty(domain.FieldAdminDiscount) {
		updates[m_product.AdminDiscount] = nullInt64(product.AdminDiscount())
	}

	if changes.Dirty(domain.FieldQuantity) {
		updates[m_product.Quantity] = product.Quantity()
	}

	if changes.Dirty(domain.FieldIsDeleted) {
		updates[m_product.IsDeleted] = product.IsDeleted()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	// Always update the updated_at timestamp when any field changes
	updates[m_product.UpdatedAt] = r.clock.Now()

	// Increment version for optimistic locking
	updates[m_product.Version] = product.Version() + 1

	return r.model.UpdateMut(product.ID(), updates), nil
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return r.dataToDomain(&data)
}

// GetByIDs retrieves the products that exist among the given ids.
func (r *ProductRepo) GetByIDs(ctx context.Context, productIDs []string) (map[string]*domain.Product, error) {
	result := make(map[string]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.Columns()...).
		Where(query.In(m_product.ProductID, productIDs)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		product, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		result[product.ID()] = product
	}

	return result, nil
}

// NameTaken reports whether the seller already has a live product with this name.
func (r *ProductRepo) NameTaken(ctx context.Context, sellerID, name string) (bool, error) {
	stmt := query.From(m_product.TableName).
		Count().
		Where(query.Eq(m_product.SellerID, sellerID)).
		Where(query.Eq(m_product.Name, name)).
		Where(query.Eq(m_product.IsDeleted, false)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return false, fmt.Errorf("failed to parse count: %w", err)
	}
	return count > 0, nil
}

// domainToData converts a domain Product to database Data.
func (r *ProductRepo) domainToData(product *domain.Product) (*m_product.Data, error) {
	mrpNum, mrpDenom, err := moneyColumns(product.MRP())
	if err != nil {
		return nil, fmt.Errorf("mrp: %w", err)
	}
	spNum, spDenom, err := moneyColumns(product.SellingPrice())
	if err != nil {
		return nil, fmt.Errorf("selling price: %w", err)
	}
	fpNum, fpDenom, err := moneyColumns(product.FinalPrice())
	if err != nil {
		return nil, fmt.Errorf("final price: %w", err)
	}

	return &m_product.Data{
		ProductID:               product.ID(),
		SellerID:                product.SellerID(),
		Name:                    product.Name(),
		Description:             product.Description(),
		MRPNumerator:            mrpNum,
		MRPDenominator:          mrpDenom,
		DiscountPercent:         product.DiscountPercent(),
		SellingPriceNumerator:   spNum,
		SellingPriceDenominator: spDenom,
		FinalPriceNumerator:     fpNum,
		FinalPriceDenominator:   fpDenom,
		DiscountIDs:             product.DiscountIDs(),
		CategoryID:              nullString(product.CategoryID()),
		BundleIDs:               product.BundleIDs(),
		AdminDiscount:           nullInt64(product.AdminDiscount()),
		Quantity:                product.Quantity(),
		IsActive:                !product.IsDeleted(),
		IsDeleted:               product.IsDeleted(),
		Version:                 product.Version(),
		CreatedAt:               product.CreatedAt(),
		UpdatedAt:               product.UpdatedAt(),
	}, nil
}

// dataToDomain converts database Data to a domain Product.
func (r *ProductRepo) dataToDomain(data *m_product.Data) (*domain.Product, error) {
	mrp, err := domain.NewMoney(data.MRPNumerator, data.MRPDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid mrp: %w", err)
	}
	sellingPrice, err := domain.NewMoney(data.SellingPriceNumerator, data.SellingPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid selling price: %w", err)
	}
	finalPrice, err := domain.NewMoney(data.FinalPriceNumerator, data.FinalPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid final price: %w", err)
	}

	var categoryID string
	if data.CategoryID.Valid {
		categoryID = data.CategoryID.StringVal
	}

	var adminDiscount *int64
	if data.AdminDiscount.Valid {
		v := data.AdminDiscount.Int64
		adminDiscount = &v
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.SellerID,
		data.Name,
		data.Description,
		mrp,
		data.DiscountPercent,
		sellingPrice,
		finalPrice,
		data.DiscountIDs,
		categoryID,
		data.BundleIDs,
		adminDiscount,
		data.Quantity,
		data.IsActive,
		data.IsDeleted,
		data.IsBlocked,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

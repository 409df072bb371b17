package repo

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_bundle"
	"github.com/light-bringer/sellerhub-service/internal/models/m_category"
	"github.com/light-bringer/sellerhub-service/internal/models/m_product"
	"github.com/light-bringer/sellerhub-service/internal/models/m_sale"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client    *spanner.Client
	discounts contracts.DiscountRepository
	clock     clock.Clock
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client, discounts contracts.DiscountRepository, clk clock.Clock) contracts.ReadModel {
	return &ReadModelImpl{
		client:    client,
		discounts: discounts,
		clock:     clk,
	}
}

// GetProductByID retrieves a product DTO with its discounts resolved.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID string) (*contracts.ProductDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns())
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
	if data.IsDeleted {
		return nil, domain.ErrProductNotFound
	}

	dto, err := rm.productToDTO(&data)
	if err != nil {
		return nil, err
	}
	dto.Discounts, err = rm.resolveDiscounts(ctx, data.DiscountIDs)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListProducts retrieves a paginated list of products with filtering.
// The page token is an opaque offset.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ProductListFilter) (*contracts.ProductListResult, error) {
	pageSize, offset := pagination(filter.PageSize, filter.PageToken)

	builder := query.From(m_product.TableName).
		Select(m_product.Columns()...).
		Where(query.Eq(m_product.IsDeleted, false))

	if filter.SellerID != "" {
		builder = builder.Where(query.Eq(m_product.SellerID, filter.SellerID))
	}
	if filter.CategoryID != "" {
		builder = builder.Where(query.Eq(m_product.CategoryID, filter.CategoryID))
	}
	if filter.ActiveOnly {
		builder = builder.Where(query.Eq(m_product.IsActive, true))
	}

	stmt := builder.
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(pageSize + 1).
		Offset(offset).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0, pageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		dto, err := rm.productToDTO(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, dto)
	}

	nextToken := ""
	if int64(len(products)) > pageSize {
		products = products[:pageSize]
		nextToken = strconv.FormatInt(offset+pageSize, 10)
	}

	return &contracts.ProductListResult{
		Products:      products,
		NextPageToken: nextToken,
		TotalCount:    int64(len(products)),
	}, nil
}

// GetBundleByID retrieves a bundle DTO with member names resolved.
func (rm *ReadModelImpl) GetBundleByID(ctx context.Context, bundleID string) (*contracts.BundleDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_bundle.TableName, spanner.Key{bundleID}, m_bundle.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrBundleNotFound
		}
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}

	var data m_bundle.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}
	if data.IsDeleted {
		return nil, domain.ErrBundleNotFound
	}

	dto, err := rm.bundleToDTO(&data)
	if err != nil {
		return nil, err
	}

	if err := rm.resolveMemberNames(ctx, dto); err != nil {
		return nil, err
	}
	dto.Discounts, err = rm.resolveDiscounts(ctx, data.DiscountIDs)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListBundles retrieves a paginated list of bundles with filtering.
func (rm *ReadModelImpl) ListBundles(ctx context.Context, filter *contracts.BundleListFilter) (*contracts.BundleListResult, error) {
	pageSize, offset := pagination(filter.PageSize, filter.PageToken)

	builder := query.From(m_bundle.TableName).
		Select(m_bundle.Columns()...).
		Where(query.Eq(m_bundle.IsDeleted, false))

	if filter.SellerID != "" {
		builder = builder.Where(query.Eq(m_bundle.SellerID, filter.SellerID))
	}

	stmt := builder.
		OrderBy(m_bundle.CreatedAt, query.Desc).
		Limit(pageSize + 1).
		Offset(offset).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	bundles := make([]*contracts.BundleDTO, 0, pageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bundles: %w", err)
		}

		var data m_bundle.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse bundle: %w", err)
		}

		dto, err := rm.bundleToDTO(&data)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, dto)
	}

	nextToken := ""
	if int64(len(bundles)) > pageSize {
		bundles = bundles[:pageSize]
		nextToken = strconv.FormatInt(offset+pageSize, 10)
	}

	return &contracts.BundleListResult{
		Bundles:       bundles,
		NextPageToken: nextToken,
		TotalCount:    int64(len(bundles)),
	}, nil
}

// GetSaleByID retrieves a sale DTO with categories, products and bundles
// resolved to display shapes.
func (rm *ReadModelImpl) GetSaleByID(ctx context.Context, saleID string) (*contracts.SaleDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_sale.TableName, spanner.Key{saleID}, m_sale.Columns())
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

	now := rm.clock.Now()
	dto := &contracts.SaleDTO{
		SaleID:    data.SaleID,
		Name:      data.Name,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
		Running:   !now.Before(data.StartDate) && now.Before(data.EndDate),
	}

	dto.Categories, err = rm.resolveSaleCategories(ctx, data.CategoryIDs, data.CategoryDiscounts)
	if err != nil {
		return nil, err
	}

	for _, pid := range data.ProductIDs {
		product, err := rm.GetProductByID(ctx, pid)
		if err != nil {
			if err == domain.ErrProductNotFound {
				continue
			}
			return nil, err
		}
		dto.Products = append(dto.Products, product)
	}

	for _, bid := range data.BundleIDs {
		bundle, err := rm.GetBundleByID(ctx, bid)
		if err != nil {
			if err == domain.ErrBundleNotFound {
				continue
			}
			return nil, err
		}
		dto.Bundles = append(dto.Bundles, bundle)
	}

	return dto, nil
}

func (rm *ReadModelImpl) resolveSaleCategories(ctx context.Context, categoryIDs []string, discounts []int64) ([]contracts.SaleCategoryDTO, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_category.TableName).
		Select(m_category.CategoryID, m_category.Name).
		Where(query.In(m_category.CategoryID, categoryIDs)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	names := make(map[string]string, len(categoryIDs))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query categories: %w", err)
		}
		var id, name string
		if err := row.Columns(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		names[id] = name
	}

	out := make([]contracts.SaleCategoryDTO, 0, len(categoryIDs))
	for i, cid := range categoryIDs {
		pct := int64(0)
		if i < len(discounts) {
			pct = discounts[i]
		}
		out = append(out, contracts.SaleCategoryDTO{
			CategoryID: cid,
			Name:       names[cid],
			Percent:    pct,
		})
	}
	return out, nil
}

// resolveMemberNames fills in member product names on a bundle DTO.
func (rm *ReadModelImpl) resolveMemberNames(ctx context.Context, dto *contracts.BundleDTO) error {
	if len(dto.Members) == 0 {
		return nil
	}

	ids := make([]string, len(dto.Members))
	for i, m := range dto.Members {
		ids[i] = m.ProductID
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.ProductID, m_product.Name).
		Where(query.In(m_product.ProductID, ids)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	names := make(map[string]string, len(ids))
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query member names: %w", err)
		}
		var id, name string
		if err := row.Columns(&id, &name); err != nil {
			return fmt.Errorf("failed to parse member name: %w", err)
		}
		names[id] = name
	}

	for i := range dto.Members {
		dto.Members[i].Name = names[dto.Members[i].ProductID]
	}
	return nil
}

func (rm *ReadModelImpl) resolveDiscounts(ctx context.Context, discountIDs []string) ([]contracts.DiscountDTO, error) {
	if len(discountIDs) == 0 {
		return nil, nil
	}
	discounts, err := rm.discounts.GetByIDs(ctx, discountIDs)
	if err != nil {
		return nil, err
	}

	now := rm.clock.Now()
	dtos := make([]contracts.DiscountDTO, 0, len(discounts))
	for _, d := range discounts {
		dtos = append(dtos, contracts.DiscountDTO{
			DiscountID: d.ID(),
			Type:       string(d.Type()),
			Value:      d.Value().Float64(),
			StartDate:  d.StartDate(),
			EndDate:    d.EndDate(),
			Active:     d.IsActiveAt(now),
		})
	}
	return dtos, nil
}

func (rm *ReadModelImpl) productToDTO(data *m_product.Data) (*contracts.ProductDTO, error) {
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

	var adminDiscount *int64
	if data.AdminDiscount.Valid {
		v := data.AdminDiscount.Int64
		adminDiscount = &v
	}

	var categoryID string
	if data.CategoryID.Valid {
		categoryID = data.CategoryID.StringVal
	}

	return &contracts.ProductDTO{
		ProductID:       data.ProductID,
		SellerID:        data.SellerID,
		Name:            data.Name,
		Description:     data.Description,
		MRP:             mrp.Float64(),
		DiscountPercent: data.DiscountPercent,
		SellingPrice:    sellingPrice.Float64(),
		FinalPrice:      finalPrice.Float64(),
		CategoryID:      categoryID,
		BundleIDs:       data.BundleIDs,
		AdminDiscount:   adminDiscount,
		Quantity:        data.Quantity,
		IsActive:        data.IsActive,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}

func (rm *ReadModelImpl) bundleToDTO(data *m_bundle.Data) (*contracts.BundleDTO, error) {
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

	members := make([]contracts.BundleMemberDTO, len(data.ProductIDs))
	for i, pid := range data.ProductIDs {
		qty := int64(1)
		if i < len(data.Quantities) {
			qty = data.Quantities[i]
		}
		members[i] = contracts.BundleMemberDTO{ProductID: pid, Quantity: qty}
	}

	var adminDiscount *int64
	if data.AdminDiscount.Valid {
		v := data.AdminDiscount.Int64
		adminDiscount = &v
	}

	return &contracts.BundleDTO{
		BundleID:        data.BundleID,
		SellerID:        data.SellerID,
		Name:            data.Name,
		Description:     data.Description,
		Members:         members,
		DiscountPercent: data.DiscountPercent,
		MRP:             mrp.Float64(),
		SellingPrice:    sellingPrice.Float64(),
		FinalPrice:      finalPrice.Float64(),
		AdminDiscount:   adminDiscount,
		IsActive:        data.IsActive,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}

func pagination(requested int, token string) (int64, int64) {
	pageSize := int64(requested)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var offset int64
	if token != "" {
		if v, err := strconv.ParseInt(token, 10, 64); err == nil && v > 0 {
			offset = v
		}
	}
	return pageSize, offset
}

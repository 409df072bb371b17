package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_bundle"
	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

// BundleRepo implements BundleRepository for Spanner.
type BundleRepo struct {
	client *spanner.Client
	model  *m_bundle.Model
	clock  clock.Clock
}

// NewBundleRepo creates a new BundleRepo.
func NewBundleRepo(client *spanner.Client, clk clock.Clock) contracts.BundleRepository {
	return &BundleRepo{
		client: client,
		model:  m_bundle.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new bundle.
func (r *BundleRepo) InsertMut(bundle *domain.Bundle) (*spanner.Mutation, error) {
	data, err := r.domainToData(bundle)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a bundle (only dirty fields).
func (r *BundleRepo) UpdateMut(bundle *domain.Bundle) (*spanner.Mutation, error) {
	changes := bundle.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_bundle.Name] = bundle.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_bundle.Description] = bundle.Description()
	}

	if changes.Dirty(domain.FieldLines) {
		productIDs, quantities := splitLines(bundle.Lines())
		updates[m_bundle.ProductIDs] = productIDs
		updates[m_bundle.Quantities] = quantities
	}

	if changes.Dirty(domain.FieldDiscountPercent) {
		updates[m_bundle.DiscountPercent] = bundle.DiscountPercent()
	}

	if changes.Dirty(domain.FieldMRP) {
		num, denom, err := moneyColumns(bundle.MRP())
		if err != nil {
			return nil, fmt.Errorf("mrp: %w", err)
		}
		updates[m_bundle.MRPNumerator] = num
		updates[m_bundle.MRPDenominator] = denom
	}

	if changes.Dirty(domain.FieldSellingPrice) {
		num, denom, err := moneyColumns(bundle.SellingPrice())
		if err != nil {
			return nil, fmt.Errorf("selling price: %w", err)
		}
		updates[m_bundle.SellingPriceNumerator] = num
		updates[m_bundle.SellingPriceDenominator] = denom
	}

	if changes.Dirty(domain.FieldFinalPrice) {
		num, denom, err := moneyColumns(bundle.FinalPrice())
		if err != nil {
			return nil, fmt.Errorf("final price: %w", err)
		}
		updates[m_bundle.FinalPriceNumerator] = num
		updates[m_bundle.FinalPriceDenominator] = denom
	}

	if changes.Dirty(domain.FieldDiscountIDs) {
		updates[m_bundle.DiscountIDs] = bundle.DiscountIDs()
	}

	if changes.Dirty(domain.FieldAdminDiscount) {
		updates[m_bundle.AdminDiscount] = nullInt64(bundle.AdminDiscount())
	}

	if changes.Dirty(domain.FieldIsDeleted) {
		updates[m_bundle.IsDeleted] = bundle.IsDeleted()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_bundle.UpdatedAt] = r.clock.Now()
	updates[m_bundle.Version] = bundle.Version() + 1

	return r.model.UpdateMut(bundle.ID(), updates), nil
}

// GetByID retrieves a bundle by ID, reconstructing the domain aggregate.
func (r *BundleRepo) GetByID(ctx context.Context, bundleID string) (*domain.Bundle, error) {
	row, err := r.client.Single().ReadRow(ctx, m_bundle.TableName, spanner.Key{bundleID}, m_bundle.Columns())
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

	return r.dataToDomain(&data)
}

// GetByIDs retrieves the bundles that exist among the given ids.
func (r *BundleRepo) GetByIDs(ctx context.Context, bundleIDs []string) (map[string]*domain.Bundle, error) {
	result := make(map[string]*domain.Bundle, len(bundleIDs))
	if len(bundleIDs) == 0 {
		return result, nil
	}

	stmt := query.From(m_bundle.TableName).
		Select(m_bundle.Columns()...).
		Where(query.In(m_bundle.BundleID, bundleIDs)).
		Build()

	bundles, err := r.queryBundles(ctx, stmt)
	if err != nil {
		return nil, err
	}
	for _, b := range bundles {
		result[b.ID()] = b
	}
	return result, nil
}

// FindContainingProduct returns all live bundles whose membership includes
// the product.
func (r *BundleRepo) FindContainingProduct(ctx context.Context, productID string) ([]*domain.Bundle, error) {
	stmt := query.From(m_bundle.TableName).
		Select(m_bundle.Columns()...).
		Where(query.ArrayContains(m_bundle.ProductIDs, productID)).
		Where(query.Eq(m_bundle.IsDeleted, false)).
		Build()

	return r.queryBundles(ctx, stmt)
}

func (r *BundleRepo) queryBundles(ctx context.Context, stmt spanner.Statement) ([]*domain.Bundle, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var bundles []*domain.Bundle
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query bundles: %w", err)
		}

		var data m_bundle.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse bundle: %w", err)
		}

		bundle, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

func splitLines(lines []domain.BundleLine) ([]string, []int64) {
	productIDs := make([]string, len(lines))
	quantities := make([]int64, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
		quantities[i] = line.Quantity
	}
	return productIDs, quantities
}

func joinLines(productIDs []string, quantities []int64) []domain.BundleLine {
	lines := make([]domain.BundleLine, len(productIDs))
	for i, id := range productIDs {
		qty := int64(1)
		if i < len(quantities) {
			qty = quantities[i]
		}
		lines[i] = domain.BundleLine{ProductID: id, Quantity: qty}
	}
	return lines
}

// domainToData converts a domain Bundle to database Data.
func (r *BundleRepo) domainToData(bundle *domain.Bundle) (*m_bundle.Data, error) {
	mrpNum, mrpDenom, err := moneyColumns(bundle.MRP())
	if err != nil {
		return nil, fmt.Errorf("mrp: %w", err)
	}
	spNum, spDenom, err := moneyColumns(bundle.SellingPrice())
	if err != nil {
		return nil, fmt.Errorf("selling price: %w", err)
	}
	fpNum, fpDenom, err := moneyColumns(bundle.FinalPrice())
	if err != nil {
		return nil, fmt.Errorf("final price: %w", err)
	}

	productIDs, quantities := splitLines(bundle.Lines())

	return &m_bundle.Data{
		BundleID:                bundle.ID(),
		SellerID:                bundle.SellerID(),
		Name:                    bundle.Name(),
		Description:             bundle.Description(),
		ProductIDs:              productIDs,
		Quantities:              quantities,
		DiscountPercent:         bundle.DiscountPercent(),
		MRPNumerator:            mrpNum,
		MRPDenominator:          mrpDenom,
		SellingPriceNumerator:   spNum,
		SellingPriceDenominator: spDenom,
		FinalPriceNumerator:     fpNum,
		FinalPriceDenominator:   fpDenom,
		DiscountIDs:             bundle.DiscountIDs(),
		AdminDiscount:           nullInt64(bundle.AdminDiscount()),
		IsActive:                !bundle.IsDeleted(),
		IsDeleted:               bundle.IsDeleted(),
		Version:                 bundle.Version(),
		CreatedAt:               bundle.CreatedAt(),
		UpdatedAt:               bundle.UpdatedAt(),
	}, nil
}

// dataToDomain converts database Data to a domain Bundle.
func (r *BundleRepo) dataToDomain(data *m_bundle.Data) (*domain.Bundle, error) {
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

	return domain.ReconstructBundle(
		data.BundleID,
		data.SellerID,
		data.Name,
		data.Description,
		joinLines(data.ProductIDs, data.Quantities),
		data.DiscountPercent,
		mrp,
		sellingPrice,
		finalPrice,
		data.DiscountIDs,
		adminDiscount,
		data.IsActive,
		data.IsDeleted,
		data.IsBlocked,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

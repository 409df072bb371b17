package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/models/m_discount"
	"github.com/light-bringer/sellerhub-service/internal/pkg/query"
)

// DiscountRepo implements DiscountRepository for Spanner.
type DiscountRepo struct {
	client *spanner.Client
	model  *m_discount.Model
}

// NewDiscountRepo creates a new DiscountRepo.
func NewDiscountRepo(client *spanner.Client) contracts.DiscountRepository {
	return &DiscountRepo{
		client: client,
		model:  m_discount.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new discount.
func (r *DiscountRepo) InsertMut(discount *domain.Discount) (*spanner.Mutation, error) {
	data, err := r.domainToData(discount)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a discount (only dirty fields).
func (r *DiscountRepo) UpdateMut(discount *domain.Discount) (*spanner.Mutation, error) {
	changes := discount.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldDiscountType) {
		updates[m_discount.DiscountType] = string(discount.Type())
	}

	if changes.Dirty(domain.FieldDiscountValue) {
		num, denom, err := moneyColumns(discount.Value())
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		updates[m_discount.ValueNumerator] = num
		updates[m_discount.ValueDenominator] = denom
	}

	if changes.Dirty(domain.FieldStartDate) {
		updates[m_discount.StartDate] = discount.StartDate()
	}

	if changes.Dirty(domain.FieldEndDate) {
		updates[m_discount.EndDate] = discount.EndDate()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	return r.model.UpdateMut(discount.ID(), updates), nil
}

// DeleteMut creates a mutation removing the discount record.
func (r *DiscountRepo) DeleteMut(discountID string) *spanner.Mutation {
	return r.model.DeleteMut(discountID)
}

// GetByID retrieves a discount by ID.
func (r *DiscountRepo) GetByID(ctx context.Context, discountID string) (*domain.Discount, error) {
	row, err := r.client.Single().ReadRow(ctx, m_discount.TableName, spanner.Key{discountID}, m_discount.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to read discount: %w", err)
	}

	var data m_discount.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse discount: %w", err)
	}

	return r.dataToDomain(&data)
}

// GetByIDs retrieves discounts by id, preserving input order. Ids that no
// longer resolve are skipped; fold order over the rest is the attachment
// order the caller passed in.
func (r *DiscountRepo) GetByIDs(ctx context.Context, discountIDs []string) ([]*domain.Discount, error) {
	if len(discountIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_discount.TableName).
		Select(m_discount.Columns()...).
		Where(query.In(m_discount.DiscountID, discountIDs)).
		Build()

	byID, err := r.queryDiscountsByID(ctx, stmt)
	if err != nil {
		return nil, err
	}

	ordered := make([]*domain.Discount, 0, len(discountIDs))
	for _, id := range discountIDs {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}

// FindByTarget returns all discounts attached to the given target.
func (r *DiscountRepo) FindByTarget(ctx context.Context, target domain.Target) ([]*domain.Discount, error) {
	stmt := query.From(m_discount.TableName).
		Select(m_discount.Columns()...).
		Where(query.Eq(m_discount.TargetKind, string(target.Kind()))).
		Where(query.Eq(m_discount.TargetID, target.ID())).
		Build()

	byID, err := r.queryDiscountsByID(ctx, stmt)
	if err != nil {
		return nil, err
	}
	discounts := make([]*domain.Discount, 0, len(byID))
	for _, d := range byID {
		discounts = append(discounts, d)
	}
	return discounts, nil
}

func (r *DiscountRepo) queryDiscountsByID(ctx context.Context, stmt spanner.Statement) (map[string]*domain.Discount, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	result := make(map[string]*domain.Discount)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query discounts: %w", err)
		}

		var data m_discount.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse discount: %w", err)
		}

		discount, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		result[discount.ID()] = discount
	}
	return result, nil
}

// domainToData converts a domain Discount to database Data.
func (r *DiscountRepo) domainToData(discount *domain.Discount) (*m_discount.Data, error) {
	num, denom, err := moneyColumns(discount.Value())
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}

	return &m_discount.Data{
		DiscountID:       discount.ID(),
		SellerID:         discount.SellerID(),
		TargetKind:       string(discount.Target().Kind()),
		TargetID:         discount.Target().ID(),
		DiscountType:     string(discount.Type()),
		ValueNumerator:   num,
		ValueDenominator: denom,
		StartDate:        discount.StartDate(),
		EndDate:          discount.EndDate(),
		CreatedAt:        discount.CreatedAt(),
		UpdatedAt:        discount.UpdatedAt(),
	}, nil
}

// dataToDomain converts database Data to a domain Discount.
func (r *DiscountRepo) dataToDomain(data *m_discount.Data) (*domain.Discount, error) {
	value, err := domain.NewMoney(data.ValueNumerator, data.ValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid discount value: %w", err)
	}

	var target domain.Target
	switch domain.TargetKind(data.TargetKind) {
	case domain.TargetProduct:
		target = domain.ProductTarget(data.TargetID)
	case domain.TargetBundle:
		target = domain.BundleTarget(data.TargetID)
	default:
		return nil, fmt.Errorf("unknown target kind %q for discount %s", data.TargetKind, data.DiscountID)
	}

	return domain.ReconstructDiscount(
		data.DiscountID,
		data.SellerID,
		target,
		domain.DiscountType(data.DiscountType),
		value,
		data.StartDate,
		data.EndDate,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

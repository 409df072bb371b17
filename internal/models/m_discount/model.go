package m_discount

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the discounts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns lists every column in declaration order, for reads.
func Columns() []string {
	return []string{
		DiscountID,
		SellerID,
		TargetKind,
		TargetID,
		DiscountType,
		ValueNumerator,
		ValueDenominator,
		StartDate,
		EndDate,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a discount.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.DiscountID,
			data.SellerID,
			data.TargetKind,
			data.TargetID,
			data.DiscountType,
			data.ValueNumerator,
			data.ValueDenominator,
			data.StartDate,
			data.EndDate,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific discount fields.
func (m *Model) UpdateMut(discountID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, DiscountID)
	values = append(values, discountID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a discount.
// Discount removal is a hard delete; discounts are references, not history.
func (m *Model) DeleteMut(discountID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{discountID})
}

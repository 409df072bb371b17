package m_bundle

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the bundles table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns lists every column in declaration order, for reads.
func Columns() []string {
	return []string{
		BundleID,
		SellerID,
		Name,
		Description,
		ProductIDs,
		Quantities,
		DiscountPercent,
		MRPNumerator,
		MRPDenominator,
		SellingPriceNumerator,
		SellingPriceDenominator,
		FinalPriceNumerator,
		FinalPriceDenominator,
		DiscountIDs,
		AdminDiscount,
		IsActive,
		IsDeleted,
		IsBlocked,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a bundle.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.BundleID,
			data.SellerID,
			data.Name,
			data.Description,
			data.ProductIDs,
			data.Quantities,
			data.DiscountPercent,
			data.MRPNumerator,
			data.MRPDenominator,
			data.SellingPriceNumerator,
			data.SellingPriceDenominator,
			data.FinalPriceNumerator,
			data.FinalPriceDenominator,
			data.DiscountIDs,
			data.AdminDiscount,
			data.IsActive,
			data.IsDeleted,
			data.IsBlocked,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific bundle fields.
func (m *Model) UpdateMut(bundleID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, BundleID)
	values = append(values, bundleID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a bundle (hard delete).
func (m *Model) DeleteMut(bundleID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{bundleID})
}

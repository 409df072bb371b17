package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns lists every column in declaration order, for reads.
func Columns() []string {
	return []string{
		ProductID,
		SellerID,
		Name,
		Description,
		MRPNumerator,
		MRPDenominator,
		DiscountPercent,
		SellingPriceNumerator,
		SellingPriceDenominator,
		FinalPriceNumerator,
		FinalPriceDenominator,
		DiscountIDs,
		CategoryID,
		BundleIDs,
		AdminDiscount,
		Quantity,
		IsActive,
		IsDeleted,
		IsBlocked,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.ProductID,
			data.SellerID,
			data.Name,
			data.Description,
			data.MRPNumerator,
			data.MRPDenominator,
			data.DiscountPercent,
			data.SellingPriceNumerator,
			data.SellingPriceDenominator,
			data.FinalPriceNumerator,
			data.FinalPriceDenominator,
			data.DiscountIDs,
			data.CategoryID,
			data.BundleIDs,
			data.AdminDiscount,
			data.Quantity,
			data.IsActive,
			data.IsDeleted,
			data.IsBlocked,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific product fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(productID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, ProductID)
	values = append(values, productID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a product (hard delete).
// Normal removal is a soft delete through UpdateMut; this exists for
// administrative cleanup.
func (m *Model) DeleteMut(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}

package m_sale

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the sales table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns lists every column in declaration order, for reads.
func Columns() []string {
	return []string{
		SaleID,
		Name,
		CategoryIDs,
		CategoryDiscounts,
		ProductIDs,
		BundleIDs,
		StartDate,
		EndDate,
		IsDeleted,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a sale.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.SaleID,
			data.Name,
			data.CategoryIDs,
			data.CategoryDiscounts,
			data.ProductIDs,
			data.BundleIDs,
			data.StartDate,
			data.EndDate,
			data.IsDeleted,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific sale fields.
func (m *Model) UpdateMut(saleID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, SaleID)
	values = append(values, saleID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

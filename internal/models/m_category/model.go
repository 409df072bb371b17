package m_category

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Columns lists every column in declaration order, for reads.
func Columns() []string {
	return []string{
		CategoryID,
		Name,
		Description,
		ProductIDs,
		IsActive,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a category.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns(),
		[]interface{}{
			data.CategoryID,
			data.Name,
			data.Description,
			data.ProductIDs,
			data.IsActive,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific category fields.
func (m *Model) UpdateMut(categoryID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, CategoryID)
	values = append(values, categoryID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

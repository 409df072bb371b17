package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	CategoryID  = "category_id"
	Name        = "name"
	Description = "description"
	ProductIDs  = "product_ids"
	IsActive    = "is_active"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

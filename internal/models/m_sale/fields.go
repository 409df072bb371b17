package m_sale

// Field name constants for the sales table.
const (
	TableName = "sales"

	SaleID            = "sale_id"
	Name              = "name"
	CategoryIDs       = "category_ids"
	CategoryDiscounts = "category_discounts"
	ProductIDs        = "product_ids"
	BundleIDs         = "bundle_ids"
	StartDate         = "start_date"
	EndDate           = "end_date"
	IsDeleted         = "is_deleted"
	Version           = "version"
	CreatedAt         = "created_at"
	UpdatedAt         = "updated_at"
)

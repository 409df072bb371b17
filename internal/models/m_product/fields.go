package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID               = "product_id"
	SellerID                = "seller_id"
	Name                    = "name"
	Description             = "description"
	MRPNumerator            = "mrp_numerator"
	MRPDenominator          = "mrp_denominator"
	DiscountPercent         = "discount_percent"
	SellingPriceNumerator   = "selling_price_numerator"
	SellingPriceDenominator = "selling_price_denominator"
	FinalPriceNumerator     = "final_price_numerator"
	FinalPriceDenominator   = "final_price_denominator"
	DiscountIDs             = "discount_ids"
	CategoryID              = "category_id"
	BundleIDs               = "bundle_ids"
	AdminDiscount           = "admin_discount"
	Quantity                = "quantity"
	IsActive                = "is_active"
	IsDeleted               = "is_deleted"
	IsBlocked               = "is_blocked"
	Version                 = "version"
	CreatedAt               = "created_at"
	UpdatedAt               = "updated_at"
)

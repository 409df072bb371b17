package m_bundle

// Field name constants for the bundles table.
const (
	TableName = "bundles"

	BundleID                = "bundle_id"
	SellerID                = "seller_id"
	Name                    = "name"
	Description             = "description"
	ProductIDs              = "product_ids"
	Quantities              = "quantities"
	DiscountPercent         = "discount_percent"
	MRPNumerator            = "mrp_numerator"
	MRPDenominator          = "mrp_denominator"
	SellingPriceNumerator   = "selling_price_numerator"
	SellingPriceDenominator = "selling_price_denominator"
	FinalPriceNumerator     = "final_price_numerator"
	FinalPriceDenominator   = "final_price_denominator"
	DiscountIDs             = "discount_ids"
	AdminDiscount           = "admin_discount"
	IsActive                = "is_active"
	IsDeleted               = "is_deleted"
	IsBlocked               = "is_blocked"
	Version                 = "version"
	CreatedAt               = "created_at"
	UpdatedAt               = "updated_at"
)

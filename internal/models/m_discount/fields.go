package m_discount

// Field name constants for the discounts table.
const (
	TableName = "discounts"

	DiscountID       = "discount_id"
	SellerID         = "seller_id"
	TargetKind       = "target_kind"
	TargetID         = "target_id"
	DiscountType     = "discount_type"
	ValueNumerator   = "value_numerator"
	ValueDenominator = "value_denominator"
	StartDate        = "start_date"
	EndDate          = "end_date"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)

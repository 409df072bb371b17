package m_discount

import (
	"time"
)

// Data represents the database model for the discounts table.
// TargetKind + TargetID persist the tagged union: a discount points at
// exactly one product or exactly one bundle.
type Data struct {
	DiscountID       string
	SellerID         string
	TargetKind       string
	TargetID         string
	DiscountType     string
	ValueNumerator   int64
	ValueDenominator int64
	StartDate        time.Time
	EndDate          time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

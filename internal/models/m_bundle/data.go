package m_bundle

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the bundles table.
// Membership is stored as parallel arrays: ProductIDs[i] has Quantities[i].
type Data struct {
	BundleID                string
	SellerID                string
	Name                    string
	Description             string
	ProductIDs              []string
	Quantities              []int64
	DiscountPercent         int64
	MRPNumerator            int64
	MRPDenominator          int64
	SellingPriceNumerator   int64
	SellingPriceDenominator int64
	FinalPriceNumerator     int64
	FinalPriceDenominator   int64
	DiscountIDs             []string
	AdminDiscount           spanner.NullInt64
	IsActive                bool
	IsDeleted               bool
	IsBlocked               bool
	Version                 int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

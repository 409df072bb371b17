package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID               string
	SellerID                string
	Name                    string
	Description             string
	MRPNumerator            int64
	MRPDenominator          int64
	DiscountPercent         int64
	SellingPriceNumerator   int64
	SellingPriceDenominator int64
	FinalPriceNumerator     int64
	FinalPriceDenominator   int64
	DiscountIDs             []string
	CategoryID              spanner.NullString
	BundleIDs               []string
	AdminDiscount           spanner.NullInt64
	Quantity                int64
	IsActive                bool
	IsDeleted               bool
	IsBlocked               bool
	Version                 int64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

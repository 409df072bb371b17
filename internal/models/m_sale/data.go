package m_sale

import (
	"time"
)

// Data represents the database model for the sales table.
// CategoryIDs and CategoryDiscounts are parallel arrays: CategoryIDs[i]
// is discounted by CategoryDiscounts[i] percent.
type Data struct {
	SaleID            string
	Name              string
	CategoryIDs       []string
	CategoryDiscounts []int64
	ProductIDs        []string
	BundleIDs         []string
	StartDate         time.Time
	EndDate           time.Time
	IsDeleted         bool
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

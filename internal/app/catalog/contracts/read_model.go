package contracts

import (
	"context"
	"time"
)

// DiscountDTO is the display shape of a discount attached to a listing.
type DiscountDTO struct {
	DiscountID string
	Type       string
	Value      float64
	StartDate  time.Time
	EndDate    time.Time
	Active     bool
}

// ProductDTO is a data transfer object for product queries.
// Prices are approximate float representations for display; the exact
// rationals stay inside the write model.
type ProductDTO struct {
	ProductID       string
	SellerID        string
	Name            string
	Description     string
	MRP             float64
	DiscountPercent int64
	SellingPrice    float64
	FinalPrice      float64
	Discounts       []DiscountDTO
	CategoryID      string
	BundleIDs       []string
	AdminDiscount   *int64
	Quantity        int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BundleMemberDTO is one bundle member resolved for display.
type BundleMemberDTO struct {
	ProductID string
	Name      string
	Quantity  int64
}

// BundleDTO is a data transfer object for bundle queries, with member
// product names resolved.
type BundleDTO struct {
	BundleID        string
	SellerID        string
	Name            string
	Description     string
	Members         []BundleMemberDTO
	DiscountPercent int64
	MRP             float64
	SellingPrice    float64
	FinalPrice      float64
	Discounts       []DiscountDTO
	AdminDiscount   *int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaleCategoryDTO is a sale category resolved for display.
type SaleCategoryDTO struct {
	CategoryID string
	Name       string
	Percent    int64
}

// SaleDTO is a data transfer object for sale queries.
type SaleDTO struct {
	SaleID     string
	Name       string
	Categories []SaleCategoryDTO
	Products   []*ProductDTO
	Bundles    []*BundleDTO
	StartDate  time.Time
	EndDate    time.Time
	Running    bool
}

// ProductListFilter defines filtering options for listing products.
type ProductListFilter struct {
	SellerID   string
	CategoryID string
	ActiveOnly bool
	PageSize   int
	PageToken  string
}

// BundleListFilter defines filtering options for listing bundles.
type BundleListFilter struct {
	SellerID  string
	PageSize  int
	PageToken string
}

// ProductListResult contains paginated product list results.
type ProductListResult struct {
	Products      []*ProductDTO
	NextPageToken string
	TotalCount    int64
}

// BundleListResult contains paginated bundle list results.
type BundleListResult struct {
	Bundles       []*BundleDTO
	NextPageToken string
	TotalCount    int64
}

// ReadModel defines the interface for catalog queries.
// Read models can bypass the domain layer for performance.
type ReadModel interface {
	// GetProductByID retrieves a product DTO with its discounts resolved.
	GetProductByID(ctx context.Context, productID string) (*ProductDTO, error)

	// ListProducts retrieves a paginated list of products with filtering.
	ListProducts(ctx context.Context, filter *ProductListFilter) (*ProductListResult, error)

	// GetBundleByID retrieves a bundle DTO with member names resolved.
	GetBundleByID(ctx context.Context, bundleID string) (*BundleDTO, error)

	// ListBundles retrieves a paginated list of bundles with filtering.
	ListBundles(ctx context.Context, filter *BundleListFilter) (*BundleListResult, error)

	// GetSaleByID retrieves a sale DTO with categories, products and
	// bundles resolved to display shapes.
	GetSaleByID(ctx context.Context, saleID string) (*SaleDTO, error)
}

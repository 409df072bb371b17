package domain

import (
	"time"

	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

// Sale field names for change tracking.
const (
	FieldSaleProducts = "sale_products"
	FieldSaleBundles  = "sale_bundles"
)

// SaleCategory is one category admitted to a sale with its discount percent.
type SaleCategory struct {
	CategoryID string
	Percent    int64
}

// Sale is an admin-run event granting per-category percentage discounts over
// a time window. Sellers opt products in; a product's category must be one of
// the sale's categories. Bundles follow their member products in.
type Sale struct {
	id         string
	name       string
	categories []SaleCategory
	productIDs []string
	bundleIDs  []string
	start      time.Time
	end        time.Time
	isDeleted  bool
	version    int64
	createdAt  time.Time
	updatedAt  time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewSale creates a new Sale.
func NewSale(id, name string, categories []SaleCategory, start, end time.Time, now time.Time, clk clock.Clock) (*Sale, error) {
	if !end.After(start) {
		return nil, ErrInvalidDiscountPeriod
	}
	for _, sc := range categories {
		if sc.Percent < 0 || sc.Percent > 100 {
			return nil, ErrInvalidDiscount
		}
	}
	return &Sale{
		id:         id,
		name:       name,
		categories: append([]SaleCategory(nil), categories...),
		productIDs: make([]string, 0),
		bundleIDs:  make([]string, 0),
		start:      start,
		end:        end,
		createdAt:  now,
		updatedAt:  now,
		clock:      clk,
		changes:    NewChangeTracker(),
	}, nil
}

// ReconstructSale reconstitutes a Sale from the database.
func ReconstructSale(id, name string, categories []SaleCategory, productIDs, bundleIDs []string, start, end time.Time, isDeleted bool, version int64, createdAt, updatedAt time.Time, clk clock.Clock) *Sale {
	return &Sale{
		id:         id,
		name:       name,
		categories: categories,
		productIDs: productIDs,
		bundleIDs:  bundleIDs,
		start:      start,
		end:        end,
		isDeleted:  isDeleted,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		clock:      clk,
		changes:    NewChangeTracker(),
	}
}

func (s *Sale) ID() string              { return s.id }
func (s *Sale) Name() string            { return s.name }
func (s *Sale) StartDate() time.Time    { return s.start }
func (s *Sale) EndDate() time.Time      { return s.end }
func (s *Sale) IsDeleted() bool         { return s.isDeleted }
func (s *Sale) Version() int64          { return s.version }
func (s *Sale) CreatedAt() time.Time    { return s.createdAt }
func (s *Sale) UpdatedAt() time.Time    { return s.updatedAt }
func (s *Sale) Changes() *ChangeTracker { return s.changes }

// Categories returns the admitted categories with their discount percents.
func (s *Sale) Categories() []SaleCategory {
	out := make([]SaleCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

// ProductIDs returns the products currently in the sale.
func (s *Sale) ProductIDs() []string {
	ids := make([]string, len(s.productIDs))
	copy(ids, s.productIDs)
	return ids
}

// BundleIDs returns the bundles currently in the sale.
func (s *Sale) BundleIDs() []string {
	ids := make([]string, len(s.bundleIDs))
	copy(ids, s.bundleIDs)
	return ids
}

// HasStarted reports whether the sale window has opened at t.
func (s *Sale) HasStarted(t time.Time) bool {
	return !t.Before(s.start)
}

// HasEnded reports whether the sale window has closed at t.
func (s *Sale) HasEnded(t time.Time) bool {
	return !t.Before(s.end)
}

// IsRunning reports whether t falls inside the sale window.
func (s *Sale) IsRunning(t time.Time) bool {
	return s.HasStarted(t) && !s.HasEnded(t)
}

// ContainsProduct reports whether the product is already in the sale.
func (s *Sale) ContainsProduct(productID string) bool {
	for _, id := range s.productIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// ContainsBundle reports whether the bundle is already in the sale.
func (s *Sale) ContainsBundle(bundleID string) bool {
	for _, id := range s.bundleIDs {
		if id == bundleID {
			return true
		}
	}
	return false
}

// CategoryPercent returns the discount percent granted to a category, and
// whether the category is admitted to the sale at all.
func (s *Sale) CategoryPercent(categoryID string) (int64, bool) {
	for _, sc := range s.categories {
		if sc.CategoryID == categoryID {
			return sc.Percent, true
		}
	}
	return 0, false
}

// MaxPercentFor returns the highest discount percent across the given
// category ids. Categories outside the sale contribute nothing. Used for
// bundles, which take the best rate among their members' categories.
func (s *Sale) MaxPercentFor(categoryIDs []string) int64 {
	var max int64
	for _, cid := range categoryIDs {
		if pct, ok := s.CategoryPercent(cid); ok && pct > max {
			max = pct
		}
	}
	return max
}

// AddProduct admits a product to the sale.
func (s *Sale) AddProduct(productID string) error {
	if s.ContainsProduct(productID) {
		return ErrProductAlreadyInSale
	}
	s.productIDs = append(s.productIDs, productID)
	s.touch(FieldSaleProducts)
	return nil
}

// AddBundle admits a bundle to the sale. Re-adding is a no-op: bundles ride in
// on multiple member products and only join once.
func (s *Sale) AddBundle(bundleID string) {
	if s.ContainsBundle(bundleID) {
		return
	}
	s.bundleIDs = append(s.bundleIDs, bundleID)
	s.touch(FieldSaleBundles)
}

// RemoveProduct drops a product from the sale. Returns true if it was present.
func (s *Sale) RemoveProduct(productID string) bool {
	for i, id := range s.productIDs {
		if id == productID {
			s.productIDs = append(s.productIDs[:i], s.productIDs[i+1:]...)
			s.touch(FieldSaleProducts)
			return true
		}
	}
	return false
}

// RemoveBundle drops a bundle from the sale. Returns true if it was present.
func (s *Sale) RemoveBundle(bundleID string) bool {
	for i, id := range s.bundleIDs {
		if id == bundleID {
			s.bundleIDs = append(s.bundleIDs[:i], s.bundleIDs[i+1:]...)
			s.touch(FieldSaleBundles)
			return true
		}
	}
	return false
}

func (s *Sale) touch(field string) {
	s.changes.MarkDirty(field)
	if s.clock != nil {
		s.updatedAt = s.clock.Now()
	}
}

package domain

import (
	"time"

	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

// FieldProductIDs is the change-tracking name for category membership.
const FieldProductIDs = "product_ids"

// Category is a platform-curated grouping of products. Sellers do not create
// categories; they place products into them, and sales target them.
type Category struct {
	id          string
	name        string
	description string
	productIDs  []string
	createdAt   time.Time
	updatedAt   time.Time

	clock   clock.Clock
	changes *ChangeTracker
}

// NewCategory creates a new Category.
func NewCategory(id, name, description string, now time.Time, clk clock.Clock) (*Category, error) {
	if name == "" {
		return nil, ErrInvalidCategoryID
	}
	c := &Category{
		id:          id,
		name:        name,
		description: description,
		productIDs:  make([]string, 0),
		createdAt:   now,
		updatedAt:   now,
		clock:       clk,
		changes:     NewChangeTracker(),
	}
	c.changes.MarkDirty(FieldName)
	c.changes.MarkDirty(FieldDescription)
	c.changes.MarkDirty(FieldProductIDs)
	return c, nil
}

// ReconstructCategory reconstitutes a Category from the database.
func ReconstructCategory(id, name, description string, productIDs []string, createdAt, updatedAt time.Time, clk clock.Clock) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		productIDs:  productIDs,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       clk,
		changes:     NewChangeTracker(),
	}
}

func (c *Category) ID() string              { return c.id }
func (c *Category) Name() string            { return c.name }
func (c *Category) Description() string     { return c.description }
func (c *Category) CreatedAt() time.Time    { return c.createdAt }
func (c *Category) UpdatedAt() time.Time    { return c.updatedAt }
func (c *Category) Changes() *ChangeTracker { return c.changes }

// ProductIDs returns the member product ids in insertion order.
func (c *Category) ProductIDs() []string {
	ids := make([]string, len(c.productIDs))
	copy(ids, c.productIDs)
	return ids
}

// ContainsProduct reports whether the product is filed under this category.
func (c *Category) ContainsProduct(productID string) bool {
	for _, id := range c.productIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// AddProduct files a product under the category. Re-adding is a no-op.
func (c *Category) AddProduct(productID string) {
	if c.ContainsProduct(productID) {
		return
	}
	c.productIDs = append(c.productIDs, productID)
	c.touch(FieldProductIDs)
}

// RemoveProduct pulls a product out of the category. Removing a product that
// is not a member is a no-op so cascade steps stay idempotent.
func (c *Category) RemoveProduct(productID string) {
	for i, id := range c.productIDs {
		if id == productID {
			c.productIDs = append(c.productIDs[:i], c.productIDs[i+1:]...)
			c.touch(FieldProductIDs)
			return
		}
	}
}

func (c *Category) touch(field string) {
	c.changes.MarkDirty(field)
	if c.clock != nil {
		c.updatedAt = c.clock.Now()
	}
}

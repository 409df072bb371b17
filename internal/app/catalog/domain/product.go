package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

// Field names for change tracking, shared by the aggregates that carry them.
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldMRP             = "mrp"
	FieldDiscountPercent = "discount_percent"
	FieldSellingPrice    = "selling_price"
	FieldFinalPrice      = "final_price"
	FieldDiscountIDs     = "discount_ids"
	FieldCategoryID      = "category_id"
	FieldBundleIDs       = "bundle_ids"
	FieldAdminDiscount   = "admin_discount"
	FieldQuantity        = "quantity"
	FieldIsActive        = "is_active"
	FieldIsDeleted       = "is_deleted"
)

// Product is the aggregate root for a seller's listing.
//
// sellingPrice and finalPrice are derived fields. They are recomputed
// synchronously inside every mutation that touches one of their inputs, so a
// successful write can never leave them stale:
//
//	sellingPrice = MRP * (1 - discountPercent/100)
//	finalPrice   = sellingPrice folded through the active attached discounts
type Product struct {
	id              string
	sellerID        string
	name            string
	description     string
	mrp             *Money
	discountPercent int64
	sellingPrice    *Money
	finalPrice      *Money
	discountIDs     []string
	categoryID      string
	bundleIDs       []string
	adminDiscount   *int64
	quantity        int64
	isActive        bool
	isDeleted       bool
	isBlocked       bool
	version         int64
	createdAt       time.Time
	updatedAt       time.Time

	clock   clock.Clock
	changes *ChangeTracker
	events  []DomainEvent
}

// NewProduct creates a new Product aggregate. Fields are validated in a fixed
// order and the first failure wins, matching the per-field contract of the
// create endpoint.
func NewProduct(id, sellerID, name, description string, mrp *Money, discountPercent, quantity int64, categoryID string, now time.Time, clk clock.Clock) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyProductName
	}
	if mrp == nil || !mrp.IsPositive() {
		return nil, ErrInvalidMRP
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p := &Product{
		id:              id,
		sellerID:        sellerID,
		name:            name,
		description:     description,
		mrp:             mrp.Copy(),
		discountPercent: discountPercent,
		discountIDs:     make([]string, 0),
		categoryID:      categoryID,
		bundleIDs:       make([]string, 0),
		quantity:        quantity,
		isActive:        true,
		createdAt:       now,
		updatedAt:       now,
		clock:           clk,
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}
	p.recalcSellingPrice()
	p.finalPrice = p.sellingPrice.Copy()

	p.changes.MarkDirty(FieldName)
	p.changes.MarkDirty(FieldDescription)
	p.changes.MarkDirty(FieldMRP)
	p.changes.MarkDirty(FieldDiscountPercent)
	p.changes.MarkDirty(FieldQuantity)
	p.changes.MarkDirty(FieldCategoryID)

	p.recordEvent(&ProductCreatedEvent{
		ProductID: p.id,
		SellerID:  p.sellerID,
		Name:      p.name,
		MRP:       p.mrp.Copy(),
		CreatedAt: p.createdAt,
	})
	return p, nil
}

// ReconstructProduct reconstitutes a Product from the database.
func ReconstructProduct(
	id, sellerID, name, description string,
	mrp *Money, discountPercent int64,
	sellingPrice, finalPrice *Money,
	discountIDs []string,
	categoryID string,
	bundleIDs []string,
	adminDiscount *int64,
	quantity int64,
	isActive, isDeleted, isBlocked bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Product {
	return &Product{
		id:              id,
		sellerID:        sellerID,
		name:            name,
		description:     description,
		mrp:             mrp,
		discountPercent: discountPercent,
		sellingPrice:    sellingPrice,
		finalPrice:      finalPrice,
		discountIDs:     discountIDs,
		categoryID:      categoryID,
		bundleIDs:       bundleIDs,
		adminDiscount:   adminDiscount,
		quantity:        quantity,
		isActive:        isActive,
		isDeleted:       isDeleted,
		isBlocked:       isBlocked,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		clock:           clk,
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}
}

// Getters
func (p *Product) ID() string                  { return p.id }
func (p *Product) SellerID() string            { return p.sellerID }
func (p *Product) Name() string                { return p.name }
func (p *Product) Description() string         { return p.description }
func (p *Product) MRP() *Money                 { return p.mrp.Copy() }
func (p *Product) DiscountPercent() int64      { return p.discountPercent }
func (p *Product) SellingPrice() *Money        { return p.sellingPrice.Copy() }
func (p *Product) FinalPrice() *Money          { return p.finalPrice.Copy() }
func (p *Product) CategoryID() string          { return p.categoryID }
func (p *Product) AdminDiscount() *int64       { return p.adminDiscount }
func (p *Product) Quantity() int64             { return p.quantity }
func (p *Product) IsDeleted() bool             { return p.isDeleted }
func (p *Product) Version() int64              { return p.version }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// DiscountIDs returns the ordered attached discount references.
func (p *Product) DiscountIDs() []string {
	ids := make([]string, len(p.discountIDs))
	copy(ids, p.discountIDs)
	return ids
}

// BundleIDs returns the bundles this product belongs to.
func (p *Product) BundleIDs() []string {
	ids := make([]string, len(p.bundleIDs))
	copy(ids, p.bundleIDs)
	return ids
}

// OwnedBy reports whether callerID owns this product.
func (p *Product) OwnedBy(callerID string) bool {
	return p.sellerID == callerID
}

// Eligible reports whether the product may participate in pricing, bundling
// and sale operations.
func (p *Product) Eligible() bool {
	return p.isActive && !p.isDeleted && !p.isBlocked
}

// SetName updates the product name.
func (p *Product) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProductName
	}
	p.name = name
	p.touch(FieldName)
	return nil
}

// SetDescription updates the product description.
func (p *Product) SetDescription(description string) {
	p.description = description
	p.touch(FieldDescription)
}

// SetQuantity updates the stock quantity.
func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	p.quantity = quantity
	p.touch(FieldQuantity)
	return nil
}

// SetMRP updates the list price and re-derives the selling price from the
// resulting MRP/discount pair.
func (p *Product) SetMRP(mrp *Money) error {
	if mrp == nil || !mrp.IsPositive() {
		return ErrInvalidMRP
	}
	p.mrp = mrp.Copy()
	p.recalcSellingPrice()
	p.touch(FieldMRP)
	return nil
}

// SetDiscountPercent updates the seller's own discount and re-derives the
// selling price.
func (p *Product) SetDiscountPercent(percent int64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	p.discountPercent = percent
	p.recalcSellingPrice()
	p.touch(FieldDiscountPercent)
	return nil
}

// MoveCategory re-homes the product; callers are responsible for moving the
// category back-references in the same commit.
func (p *Product) MoveCategory(categoryID string) {
	p.categoryID = categoryID
	p.touch(FieldCategoryID)
}

// AttachDiscount appends a discount reference, preserving attachment order.
// Attaching an already-attached discount is a no-op.
func (p *Product) AttachDiscount(discountID string) {
	for _, id := range p.discountIDs {
		if id == discountID {
			return
		}
	}
	p.discountIDs = append(p.discountIDs, discountID)
	p.touch(FieldDiscountIDs)
}

// DetachDiscount removes a discount reference. Returns true if it was present.
func (p *Product) DetachDiscount(discountID string) bool {
	for i, id := range p.discountIDs {
		if id == discountID {
			p.discountIDs = append(p.discountIDs[:i], p.discountIDs[i+1:]...)
			p.touch(FieldDiscountIDs)
			return true
		}
	}
	return false
}

// HasDiscount reports whether the discount is currently attached.
func (p *Product) HasDiscount(discountID string) bool {
	for _, id := range p.discountIDs {
		if id == discountID {
			return true
		}
	}
	return false
}

// RefoldFinalPrice recomputes finalPrice from the selling price and the
// attached discount records, folding only those active at now. Must be called
// in every mutation path that changes the selling price or the attachments.
func (p *Product) RefoldFinalPrice(discounts []*Discount, now time.Time) {
	p.finalPrice = defaultPricing.FinalPrice(p.sellingPrice, discounts, now)
	p.touch(FieldFinalPrice)
}

// AddBundleRef records membership in a bundle.
func (p *Product) AddBundleRef(bundleID string) {
	for _, id := range p.bundleIDs {
		if id == bundleID {
			return
		}
	}
	p.bundleIDs = append(p.bundleIDs, bundleID)
	p.touch(FieldBundleIDs)
}

// RemoveBundleRef clears membership in a bundle.
func (p *Product) RemoveBundleRef(bundleID string) {
	for i, id := range p.bundleIDs {
		if id == bundleID {
			p.bundleIDs = append(p.bundleIDs[:i], p.bundleIDs[i+1:]...)
			p.touch(FieldBundleIDs)
			return
		}
	}
}

// ApplySaleDiscount discounts the live selling price by a sale category
// percentage, rounding to the nearest whole unit, and records the applied
// percentage for later reversal.
func (p *Product) ApplySaleDiscount(percent int64) {
	p.sellingPrice = defaultPricing.ApplySalePercent(p.sellingPrice, percent)
	p.adminDiscount = &percent
	p.touch(FieldSellingPrice)
	p.touch(FieldAdminDiscount)
}

// ReverseSaleDiscount restores the pre-sale selling price from the discounted
// one. The forward direction rounds, so the recovered value can differ from
// the original by a rounding unit.
func (p *Product) ReverseSaleDiscount(percent int64) error {
	original, err := defaultPricing.ReverseSalePercent(p.sellingPrice, percent)
	if err != nil {
		return err
	}
	p.sellingPrice = original
	p.adminDiscount = nil
	p.touch(FieldSellingPrice)
	p.touch(FieldAdminDiscount)
	return nil
}

// SoftDelete marks the product deleted. The row is never removed; every read
// path filters on the flag.
func (p *Product) SoftDelete(now time.Time) error {
	if p.isDeleted {
		return ErrProductDeleted
	}
	p.isDeleted = true
	p.touch(FieldIsDeleted)
	p.recordEvent(&ProductDeletedEvent{ProductID: p.id, DeletedAt: now})
	return nil
}

func (p *Product) recalcSellingPrice() {
	p.sellingPrice = defaultPricing.SellingPrice(p.mrp, p.discountPercent)
	p.changes.MarkDirty(FieldSellingPrice)
}

func (p *Product) touch(field string) {
	p.changes.MarkDirty(field)
	if p.clock != nil {
		p.updatedAt = p.clock.Now()
	}
}

func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

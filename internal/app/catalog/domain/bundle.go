package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/sellerhub-service/internal/pkg/clock"
)

// FieldLines is the change-tracking name for bundle membership.
const FieldLines = "lines"

// BundleLine is one member product with its quantity within a bundle.
type BundleLine struct {
	ProductID string
	Quantity  int64
}

// Bundle groups a seller's products into a unit sold at an aggregate price.
//
// MRP and sellingPrice are derived from the live prices of member products:
//
//	MRP          = sum over lines of member.MRP * quantity
//	sellingPrice = MRP * (1 - discountPercent/100)
//
// Both must be recomputed whenever membership, the bundle discount, or a
// member's MRP changes. Staleness here is a correctness bug.
type Bundle struct {
	id              string
	sellerID        string
	name            string
	description     string
	lines           []BundleLine
	discountPercent int64
	mrp             *Money
	sellingPrice    *Money
	finalPrice      *Money
	discountIDs     []string
	adminDiscount   *int64
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

// NewBundle creates a new Bundle aggregate. Pricing is derived immediately
// from the supplied member prices; the caller resolves those from the live
// product records in the same request.
func NewBundle(id, sellerID, name, description string, lines []BundleLine, discountPercent int64, prices map[string]*Money, now time.Time, clk clock.Clock) (*Bundle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyBundleName
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyBundleDescription
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	if len(lines) == 0 {
		return nil, ErrEmptyBundle
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if seen[line.ProductID] {
			return nil, ErrDuplicateBundleProduct
		}
		seen[line.ProductID] = true
	}

	b := &Bundle{
		id:              id,
		sellerID:        sellerID,
		name:            name,
		description:     description,
		lines:           append([]BundleLine(nil), lines...),
		discountPercent: discountPercent,
		discountIDs:     make([]string, 0),
		isActive:        true,
		createdAt:       now,
		updatedAt:       now,
		clock:           clk,
		changes:         NewChangeTracker(),
		events:          make([]DomainEvent, 0),
	}
	b.Reprice(prices)
	b.finalPrice = b.sellingPrice.Copy()

	b.changes.MarkDirty(FieldName)
	b.changes.MarkDirty(FieldDescription)
	b.changes.MarkDirty(FieldLines)
	b.changes.MarkDirty(FieldDiscountPercent)

	b.recordEvent(&BundleCreatedEvent{
		BundleID:  b.id,
		SellerID:  b.sellerID,
		Name:      b.name,
		MRP:       b.mrp.Copy(),
		CreatedAt: b.createdAt,
	})
	return b, nil
}

// ReconstructBundle reconstitutes a Bundle from the database.
func ReconstructBundle(
	id, sellerID, name, description string,
	lines []BundleLine,
	discountPercent int64,
	mrp, sellingPrice, finalPrice *Money,
	discountIDs []string,
	adminDiscount *int64,
	isActive, isDeleted, isBlocked bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Bundle {
	return &Bundle{
		id:              id,
		sellerID:        sellerID,
		name:            name,
		description:     description,
		lines:           lines,
		discountPercent: discountPercent,
		mrp:             mrp,
		sellingPrice:    sellingPrice,
		finalPrice:      finalPrice,
		discountIDs:     discountIDs,
		adminDiscount:   adminDiscount,
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
func (b *Bundle) ID() string                  { return b.id }
func (b *Bundle) SellerID() string            { return b.sellerID }
func (b *Bundle) Name() string                { return b.name }
func (b *Bundle) Description() string         { return b.description }
func (b *Bundle) DiscountPercent() int64      { return b.discountPercent }
func (b *Bundle) MRP() *Money                 { return b.mrp.Copy() }
func (b *Bundle) SellingPrice() *Money        { return b.sellingPrice.Copy() }
func (b *Bundle) FinalPrice() *Money          { return b.finalPrice.Copy() }
func (b *Bundle) AdminDiscount() *int64       { return b.adminDiscount }
func (b *Bundle) IsDeleted() bool             { return b.isDeleted }
func (b *Bundle) Version() int64              { return b.version }
func (b *Bundle) CreatedAt() time.Time        { return b.createdAt }
func (b *Bundle) UpdatedAt() time.Time        { return b.updatedAt }
func (b *Bundle) Changes() *ChangeTracker     { return b.changes }
func (b *Bundle) DomainEvents() []DomainEvent { return b.events }

// Lines returns the bundle membership in order.
func (b *Bundle) Lines() []BundleLine {
	lines := make([]BundleLine, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// DiscountIDs returns the ordered attached discount references.
func (b *Bundle) DiscountIDs() []string {
	ids := make([]string, len(b.discountIDs))
	copy(ids, b.discountIDs)
	return ids
}

// OwnedBy reports whether callerID owns this bundle.
func (b *Bundle) OwnedBy(callerID string) bool {
	return b.sellerID == callerID
}

// Eligible reports whether the bundle may be mutated or join a sale.
func (b *Bundle) Eligible() bool {
	return b.isActive && !b.isDeleted && !b.isBlocked
}

// ContainsProduct reports whether the product is a member.
func (b *Bundle) ContainsProduct(productID string) bool {
	for _, line := range b.lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// MemberCount returns the number of member lines.
func (b *Bundle) MemberCount() int {
	return len(b.lines)
}

// SetName updates the bundle name.
func (b *Bundle) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyBundleName
	}
	b.name = name
	b.touch(FieldName)
	return nil
}

// SetDescription updates the bundle description.
func (b *Bundle) SetDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyBundleDescription
	}
	b.description = description
	b.touch(FieldDescription)
	return nil
}

// SetDiscountPercent updates the bundle-wide discount. Callers must Reprice
// afterwards so the selling price reflects the new percentage.
func (b *Bundle) SetDiscountPercent(percent int64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDiscount
	}
	b.discountPercent = percent
	b.touch(FieldDiscountPercent)
	return nil
}

// AddLines merges new members into the bundle. A line naming a product that
// is already a member rejects the whole call and leaves the bundle unchanged.
func (b *Bundle) AddLines(lines []BundleLine) error {
	for _, line := range lines {
		if line.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if b.ContainsProduct(line.ProductID) {
			return ErrDuplicateBundleProduct
		}
	}
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if seen[line.ProductID] {
			return ErrDuplicateBundleProduct
		}
		seen[line.ProductID] = true
	}
	b.lines = append(b.lines, lines...)
	b.touch(FieldLines)
	return nil
}

// RemoveLine splices a member product out of the bundle.
func (b *Bundle) RemoveLine(productID string) error {
	for i, line := range b.lines {
		if line.ProductID == productID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			b.touch(FieldLines)
			return nil
		}
	}
	return ErrProductNotInBundle
}

// Reprice recomputes MRP and selling price from the supplied live member
// prices. A member missing from the map contributes zero; the bundle keeps a
// best-effort total rather than failing the whole recomputation. An empty
// bundle prices at zero but is not deleted.
func (b *Bundle) Reprice(prices map[string]*Money) {
	b.mrp = defaultPricing.AggregateMRP(b.lines, prices)
	b.sellingPrice = defaultPricing.SellingPrice(b.mrp, b.discountPercent)
	b.changes.MarkDirty(FieldMRP)
	b.changes.MarkDirty(FieldSellingPrice)
}

// AttachDiscount appends a discount reference, preserving attachment order.
func (b *Bundle) AttachDiscount(discountID string) {
	for _, id := range b.discountIDs {
		if id == discountID {
			return
		}
	}
	b.discountIDs = append(b.discountIDs, discountID)
	b.touch(FieldDiscountIDs)
}

// DetachDiscount removes a discount reference. Returns true if it was present.
func (b *Bundle) DetachDiscount(discountID string) bool {
	for i, id := range b.discountIDs {
		if id == discountID {
			b.discountIDs = append(b.discountIDs[:i], b.discountIDs[i+1:]...)
			b.touch(FieldDiscountIDs)
			return true
		}
	}
	return false
}

// HasDiscount reports whether the discount is currently attached.
func (b *Bundle) HasDiscount(discountID string) bool {
	for _, id := range b.discountIDs {
		if id == discountID {
			return true
		}
	}
	return false
}

// RefoldFinalPrice recomputes finalPrice from the selling price and the
// attached discount records active at now.
func (b *Bundle) RefoldFinalPrice(discounts []*Discount, now time.Time) {
	b.finalPrice = defaultPricing.FinalPrice(b.sellingPrice, discounts, now)
	b.touch(FieldFinalPrice)
}

// ApplySaleDiscount replaces the selling price with the rounded, discounted
// total of member selling prices and records the applied percentage.
func (b *Bundle) ApplySaleDiscount(memberTotal *Money, percent int64) {
	b.sellingPrice = defaultPricing.ApplySalePercent(memberTotal, percent)
	b.adminDiscount = &percent
	b.touch(FieldSellingPrice)
	b.touch(FieldAdminDiscount)
}

// SetSellingPrice overwrites the selling price directly. Used by sale removal
// where the new price is the sum of members' reversed prices.
func (b *Bundle) SetSellingPrice(price *Money) {
	b.sellingPrice = price.Copy()
	b.adminDiscount = nil
	b.touch(FieldSellingPrice)
	b.touch(FieldAdminDiscount)
}

// SoftDelete marks the bundle deleted.
func (b *Bundle) SoftDelete(now time.Time) {
	b.isDeleted = true
	b.touch(FieldIsDeleted)
	b.recordEvent(&BundleDeletedEvent{BundleID: b.id, DeletedAt: now})
}

func (b *Bundle) touch(field string) {
	b.changes.MarkDirty(field)
	if b.clock != nil {
		b.updatedAt = b.clock.Now()
	}
}

func (b *Bundle) recordEvent(event DomainEvent) {
	b.events = append(b.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (b *Bundle) ClearEvents() {
	b.events = make([]DomainEvent, 0)
}

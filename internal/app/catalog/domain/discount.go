package domain

import (
	"time"
)

// Discount field names for change tracking.
const (
	FieldDiscountType  = "discount_type"
	FieldDiscountValue = "discount_value"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
)

// DiscountType distinguishes percentage discounts from fixed-amount ones.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// TargetKind names the entity kind a discount is attached to.
type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetBundle  TargetKind = "bundle"
)

// Target identifies the single entity a discount applies to. A discount
// attaches to exactly one product or exactly one bundle; modelling this as a
// tagged union removes the "both or neither" case by construction.
type Target struct {
	kind TargetKind
	id   string
}

// ProductTarget creates a Target pointing at a product.
func ProductTarget(productID string) Target {
	return Target{kind: TargetProduct, id: productID}
}

// BundleTarget creates a Target pointing at a bundle.
func BundleTarget(bundleID string) Target {
	return Target{kind: TargetBundle, id: bundleID}
}

// Kind returns the target kind.
func (t Target) Kind() TargetKind { return t.kind }

// ID returns the target entity id.
func (t Target) ID() string { return t.id }

// IsZero reports whether the target was never set.
func (t Target) IsZero() bool { return t.id == "" }

// Discount is a time-bound price reduction attached to one product or bundle.
// Pending, Active and Expired are not stored states: they are evaluated
// lazily against the window on every read or write touching the discount.
type Discount struct {
	id       string
	sellerID string
	target   Target
	dtype    DiscountType
	value    *Money
	start    time.Time
	end      time.Time

	createdAt time.Time
	updatedAt time.Time

	changes *ChangeTracker
}

// NewDiscount creates a new Discount with validation.
func NewDiscount(id, sellerID string, target Target, dtype DiscountType, value *Money, start, end time.Time, now time.Time) (*Discount, error) {
	if target.IsZero() {
		return nil, ErrDiscountTargetRequired
	}
	if err := validateDiscountValue(dtype, value); err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidDiscountPeriod
	}

	d := &Discount{
		id:        id,
		sellerID:  sellerID,
		target:    target,
		dtype:     dtype,
		value:     value.Copy(),
		start:     start,
		end:       end,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	d.changes.MarkDirty(FieldDiscountType)
	d.changes.MarkDirty(FieldDiscountValue)
	d.changes.MarkDirty(FieldStartDate)
	d.changes.MarkDirty(FieldEndDate)
	return d, nil
}

// ReconstructDiscount reconstitutes a Discount loaded from the database.
func ReconstructDiscount(id, sellerID string, target Target, dtype DiscountType, value *Money, start, end, createdAt, updatedAt time.Time) *Discount {
	return &Discount{
		id:        id,
		sellerID:  sellerID,
		target:    target,
		dtype:     dtype,
		value:     value,
		start:     start,
		end:       end,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

func validateDiscountValue(dtype DiscountType, value *Money) error {
	if value == nil || value.IsNegative() {
		return ErrInvalidDiscountValue
	}
	if dtype == DiscountPercentage && value.GreaterThan(NewMoneyFromInt64(100)) {
		return ErrInvalidDiscountValue
	}
	return nil
}

// Getters
func (d *Discount) ID() string             { return d.id }
func (d *Discount) SellerID() string       { return d.sellerID }
func (d *Discount) Target() Target         { return d.target }
func (d *Discount) Type() DiscountType     { return d.dtype }
func (d *Discount) Value() *Money          { return d.value.Copy() }
func (d *Discount) StartDate() time.Time   { return d.start }
func (d *Discount) EndDate() time.Time     { return d.end }
func (d *Discount) CreatedAt() time.Time   { return d.createdAt }
func (d *Discount) UpdatedAt() time.Time   { return d.updatedAt }
func (d *Discount) Changes() *ChangeTracker { return d.changes }

// OwnedBy reports whether callerID owns this discount.
func (d *Discount) OwnedBy(callerID string) bool {
	return d.sellerID == callerID
}

// IsActiveAt reports whether the validity window contains t
// (start inclusive, end exclusive).
func (d *Discount) IsActiveAt(t time.Time) bool {
	return !t.Before(d.start) && t.Before(d.end)
}

// Revise overwrites the discount's type, value and validity window.
// Callers must re-evaluate activation against the target afterwards: a new
// window can both activate and deactivate the discount relative to now.
func (d *Discount) Revise(dtype DiscountType, value *Money, start, end time.Time, now time.Time) error {
	if err := validateDiscountValue(dtype, value); err != nil {
		return err
	}
	if !end.After(start) {
		return ErrInvalidDiscountPeriod
	}

	d.dtype = dtype
	d.value = value.Copy()
	d.start = start
	d.end = end
	d.updatedAt = now
	d.changes.MarkDirty(FieldDiscountType)
	d.changes.MarkDirty(FieldDiscountValue)
	d.changes.MarkDirty(FieldStartDate)
	d.changes.MarkDirty(FieldEndDate)
	return nil
}

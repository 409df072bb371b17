package domain

import (
	"math/big"
	"time"
)

// PricingCalculator is the domain service for every price derivation in the
// system. Product, Bundle and Sale operations all delegate here so the
// formulas live in one place instead of being re-implemented per endpoint.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// Package-level calculator instance for domain object use.
var defaultPricing = NewPricingCalculator()

// ApplyDiscount applies a single discount step to a price.
//   - percentage: price - price*value/100
//   - fixed:      price - value
//   - anything else is a no-op; unknown types pass the price through
//     unchanged rather than failing the whole fold.
func (pc *PricingCalculator) ApplyDiscount(price *Money, dtype DiscountType, value *Money) *Money {
	switch dtype {
	case DiscountPercentage:
		cut := price.MultiplyByRat(new(big.Rat).Quo(value.Rat(), big.NewRat(100, 1)))
		return price.Subtract(cut)
	case DiscountFixed:
		return price.Subtract(value)
	default:
		return price.Copy()
	}
}

// FinalPrice folds the discounts that are active at now over the base price,
// left to right in the order given. Pending and expired discounts are
// skipped: activation is a property of the window, not of stored state.
func (pc *PricingCalculator) FinalPrice(base *Money, discounts []*Discount, now time.Time) *Money {
	price := base.Copy()
	for _, d := range discounts {
		if d == nil || !d.IsActiveAt(now) {
			continue
		}
		price = pc.ApplyDiscount(price, d.Type(), d.Value())
	}
	return price
}

// PricedLine is a bundle member with its resolved unit price.
type PricedLine struct {
	UnitPrice *Money
	Quantity  int64
}

// CompositePrice prices a discounted base plus un-discounted additive lines.
// The order is significant: the discount fold applies to the base first, the
// line totals are added after.
func (pc *PricingCalculator) CompositePrice(base *Money, discounts []*Discount, lines []PricedLine, now time.Time) *Money {
	price := pc.FinalPrice(base, discounts, now)
	for _, line := range lines {
		if line.UnitPrice == nil {
			continue
		}
		price = price.Add(line.UnitPrice.MultiplyByInt64(line.Quantity))
	}
	return price
}

// SellingPrice derives the selling price from an MRP and the entity's own
// percentage discount: MRP - MRP*percent/100.
func (pc *PricingCalculator) SellingPrice(mrp *Money, percent int64) *Money {
	cut := mrp.MultiplyByRat(big.NewRat(percent, 100))
	return mrp.Subtract(cut)
}

// AggregateMRP sums unit price times quantity over bundle lines. A line whose
// price is absent from the map contributes zero: a member deleted mid-flight
// silently drops out of the total instead of aborting the recomputation.
func (pc *PricingCalculator) AggregateMRP(lines []BundleLine, prices map[string]*Money) *Money {
	total := Zero()
	for _, line := range lines {
		unit, ok := prices[line.ProductID]
		if !ok || unit == nil {
			continue
		}
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		total = total.Add(unit.MultiplyByInt64(qty))
	}
	return total
}

// ApplySalePercent applies a category sale discount and rounds the result to
// the nearest whole unit. The rounding makes the reverse direction lossy;
// that round-trip behavior is deliberate and covered by tests.
func (pc *PricingCalculator) ApplySalePercent(price *Money, percent int64) *Money {
	kept := price.MultiplyByRat(big.NewRat(100-percent, 100))
	return kept.RoundNearest()
}

// ReverseSalePercent recovers the pre-sale price: discounted / (1 - pct/100).
// A 100 percent discount cannot be reversed.
func (pc *PricingCalculator) ReverseSalePercent(price *Money, percent int64) (*Money, error) {
	return price.DivideByRat(big.NewRat(100-percent, 100))
}

// Package pricing derives customer prices from stored cost prices.
//
// A markup percentage is "percent added to cost": 50 means the customer pays
// cost × 1.5. Prices are kept at full precision until Round is applied at the
// response boundary.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// MaxMarkupPercentage bounds admin input; anything above is almost certainly a typo.
const MaxMarkupPercentage = 1000

var (
	ErrNegativeMarkup  = errors.New("markup percentage must not be negative")
	ErrMarkupTooLarge  = errors.New("markup percentage is too large")
	ErrNegativeCost    = errors.New("cost price must not be negative")
	ErrNoRateCardEntry = errors.New("no rate card entries to quote from")
)

var hundred = decimal.NewFromInt(100)

// ValidateMarkup rejects markups outside [0, MaxMarkupPercentage].
func ValidateMarkup(pct decimal.Decimal) error {
	if pct.IsNegative() {
		return ErrNegativeMarkup
	}
	if pct.GreaterThan(decimal.NewFromInt(MaxMarkupPercentage)) {
		return ErrMarkupTooLarge
	}
	return nil
}

// ValidateCost rejects negative cost prices.
func ValidateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

// Multiplier converts a markup percentage into the factor applied to cost.
func Multiplier(markupPct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(markupPct.Div(hundred))
}

// CustomerPrice returns cost × (1 + markup/100), unrounded.
func CustomerPrice(cost, markupPct decimal.Decimal) decimal.Decimal {
	return cost.Mul(Multiplier(markupPct))
}

// EffectiveMarkup picks a per-product override when one is set.
func EffectiveMarkup(global decimal.Decimal, override decimal.NullDecimal) decimal.Decimal {
	if override.Valid {
		return override.Decimal
	}
	return global
}

// VariantTotal adds a variant's price modifier to a base customer price.
func VariantTotal(base, modifier decimal.Decimal) decimal.Decimal {
	return base.Add(modifier)
}

// Round rounds half away from zero to cents.
func Round(price decimal.Decimal) decimal.Decimal {
	return price.Round(2)
}

// ToFloat renders a rounded price for JSON responses.
func ToFloat(price decimal.Decimal) float64 {
	return Round(price).InexactFloat64()
}

// SizePrice is one rate-card entry: a size and its wholesale price.
type SizePrice struct {
	Width  float64
	Height float64
	Price  decimal.Decimal
	Ref    uint // catalog row the entry came from, zero for static tables
}

// Area returns width × height.
func (s SizePrice) Area() float64 {
	return s.Width * s.Height
}

// ClosestSize returns the entry whose area is nearest to width × height.
// Equal differences keep the earliest entry, so callers control tie-breaks
// through slice order.
func ClosestSize(entries []SizePrice, width, height float64) (SizePrice, error) {
	if len(entries) == 0 {
		return SizePrice{}, ErrNoRateCardEntry
	}
	target := width * height
	best := entries[0]
	bestDiff := math.Abs(best.Area() - target)
	for _, e := range entries[1:] {
		if diff := math.Abs(e.Area() - target); diff < bestDiff {
			best, bestDiff = e, diff
		}
	}
	return best, nil
}

// ExactSize returns the entry with exactly the given dimensions, if any.
func ExactSize(entries []SizePrice, width, height float64) (SizePrice, bool) {
	for _, e := range entries {
		if e.Width == width && e.Height == height {
			return e, true
		}
	}
	return SizePrice{}, false
}

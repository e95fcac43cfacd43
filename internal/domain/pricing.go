package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpecialPriceRule changes the hourly rate of a room inside [Start, End).
// Exactly one of Rate and Multiplier is set. Multiplier scales the base hourly rate.
type SpecialPriceRule struct {
	ID          int64
	RoomID      int64
	Start       time.Time
	End         time.Time
	Rate        *decimal.Decimal
	Multiplier  *decimal.Decimal
	Description *string
	Active      bool
	CreatedAt   time.Time
}

func (r SpecialPriceRule) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// EffectiveRate resolves the hourly rate given the room base rate
func (r SpecialPriceRule) EffectiveRate(base decimal.Decimal) decimal.Decimal {
	if r.Rate != nil {
		return *r.Rate
	}
	if r.Multiplier != nil {
		return base.Mul(*r.Multiplier)
	}
	return base
}

// MoreSpecificThan orders overlapping rules: shorter window first, then the
// most recently created, then the higher ID.
func (r SpecialPriceRule) MoreSpecificThan(o SpecialPriceRule) bool {
	if d1, d2 := r.End.Sub(r.Start), o.End.Sub(o.Start); d1 != d2 {
		return d1 < d2
	}
	if !r.CreatedAt.Equal(o.CreatedAt) {
		return r.CreatedAt.After(o.CreatedAt)
	}
	return r.ID > o.ID
}

// PriceSegment is a maximal sub-window charged at a single rate
type PriceSegment struct {
	Start  time.Time
	End    time.Time
	Rate   decimal.Decimal
	RuleID *int64 // nil = room base rate
}

// Quote is the priced reservation window
type Quote struct {
	Total    decimal.Decimal
	Segments []PriceSegment
}

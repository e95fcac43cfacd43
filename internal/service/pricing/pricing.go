package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Price splits [start, end) into maximal segments charged at a single rate and
// sums them. Overlapping rules resolve to the most specific one. The total is
// rounded half-up to cents once, after summing.
func Price(room *domain.Room, rules []domain.SpecialPriceRule, start, end time.Time) domain.Quote {
	if room == nil || !start.Before(end) {
		return domain.Quote{Total: decimal.Zero}
	}

	window := domain.Interval{Start: start, End: end}
	applicable := make([]domain.SpecialPriceRule, 0, len(rules))
	for _, r := range rules {
		if !r.Active || (r.Rate == nil) == (r.Multiplier == nil) {
			continue
		}
		if r.Interval().Overlaps(window) {
			applicable = append(applicable, r)
		}
	}

	var segments []domain.PriceSegment
	bounds := boundaries(applicable, start, end)
	for i := 0; i+1 < len(bounds); i++ {
		piece := domain.Interval{Start: bounds[i], End: bounds[i+1]}

		rate := room.HourlyRate
		var ruleID *int64
		if best := mostSpecific(applicable, piece); best != nil {
			rate = best.EffectiveRate(room.HourlyRate)
			id := best.ID
			ruleID = &id
		}

		if n := len(segments); n > 0 && sameRule(segments[n-1].RuleID, ruleID) {
			segments[n-1].End = piece.End
			continue
		}
		segments = append(segments, domain.PriceSegment{
			Start:  piece.Start,
			End:    piece.End,
			Rate:   rate,
			RuleID: ruleID,
		})
	}

	total := decimal.Zero
	for _, seg := range segments {
		seconds := decimal.NewFromInt(int64(seg.End.Sub(seg.Start) / time.Second))
		total = total.Add(seg.Rate.Mul(seconds))
	}

	return domain.Quote{
		Total:    total.Div(secondsPerHour).Round(2),
		Segments: segments,
	}
}

// boundaries returns sorted unique cut points of [start, end) at every rule edge
func boundaries(rules []domain.SpecialPriceRule, start, end time.Time) []time.Time {
	points := []time.Time{start, end}
	for _, r := range rules {
		if r.Start.After(start) && r.Start.Before(end) {
			points = append(points, r.Start)
		}
		if r.End.After(start) && r.End.Before(end) {
			points = append(points, r.End)
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	out := points[:1]
	for _, p := range points[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

func mostSpecific(rules []domain.SpecialPriceRule, piece domain.Interval) *domain.SpecialPriceRule {
	var best *domain.SpecialPriceRule
	for i := range rules {
		if !rules[i].Interval().Contains(piece) {
			continue
		}
		if best == nil || rules[i].MoreSpecificThan(*best) {
			best = &rules[i]
		}
	}
	return best
}

func sameRule(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

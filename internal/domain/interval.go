package domain

import (
	"sort"
	"time"
)

// Interval is a half-open time window [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates that start is before end
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

// Overlaps reports whether two half-open windows share any instant.
// Touching windows ([10:00,11:00) and [11:00,12:00)) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies entirely inside i
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Clip returns the intersection of i and o, ok=false if it is empty
func (i Interval) Clip(o Interval) (Interval, bool) {
	start := i.Start
	if o.Start.After(start) {
		start = o.Start
	}
	end := i.End
	if o.End.Before(end) {
		end = o.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// MergeIntervals sorts and joins overlapping or touching windows
func MergeIntervals(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}

	sorted := make([]Interval, 0, len(in))
	for _, iv := range in {
		if !iv.IsEmpty() {
			sorted = append(sorted, iv)
		}
	}
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	var out []Interval
	for _, iv := range sorted {
		if n := len(out); n > 0 && !iv.Start.After(out[n-1].End) {
			if iv.End.After(out[n-1].End) {
				out[n-1].End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// SubtractIntervals removes every window of cut from base. Both inputs may be unsorted.
func SubtractIntervals(base, cut []Interval) []Interval {
	result := MergeIntervals(base)
	for _, c := range MergeIntervals(cut) {
		var next []Interval
		for _, b := range result {
			if !b.Overlaps(c) {
				next = append(next, b)
				continue
			}
			if b.Start.Before(c.Start) {
				next = append(next, Interval{Start: b.Start, End: c.Start})
			}
			if c.End.Before(b.End) {
				next = append(next, Interval{Start: c.End, End: b.End})
			}
		}
		result = next
	}
	return result
}

// CoveredBy reports whether target is fully inside the union of windows
func CoveredBy(target Interval, windows []Interval) bool {
	for _, w := range MergeIntervals(windows) {
		if w.Contains(target) {
			return true
		}
	}
	return false
}

// TotalDuration sums the durations of merged windows
func TotalDuration(in []Interval) time.Duration {
	var total time.Duration
	for _, iv := range MergeIntervals(in) {
		total += iv.Duration()
	}
	return total
}

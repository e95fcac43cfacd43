package calendar

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// OpenIntervals returns the merged open windows of the schedule inside [from, to).
// Weekly rules are expanded per local calendar day, unblocked exceptions are
// added and blocked exceptions are removed last, so blocked wins on overlap.
func OpenIntervals(s *domain.Schedule, from, to time.Time) []domain.Interval {
	if s == nil || !from.Before(to) {
		return nil
	}

	period := domain.Interval{Start: from, End: to}
	loc := s.Location

	var open []domain.Interval

	local := from.In(loc)
	for day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc); day.Before(to); day = nextDay(day) {
		rule, ok := s.Rules[day.Weekday()]
		if !ok {
			continue
		}
		window := domain.Interval{
			Start: rule.OpenTime.On(day.Year(), day.Month(), day.Day(), loc),
			End:   rule.CloseTime.On(day.Year(), day.Month(), day.Day(), loc),
		}
		if clipped, ok := window.Clip(period); ok {
			open = append(open, clipped)
		}
	}

	var blocked []domain.Interval
	for _, exc := range s.Exceptions {
		clipped, ok := exc.Interval().Clip(period)
		if !ok {
			continue
		}
		if exc.Blocked {
			blocked = append(blocked, clipped)
		} else {
			open = append(open, clipped)
		}
	}

	return domain.SubtractIntervals(open, blocked)
}

// IsOpen reports whether [start, end) lies entirely inside open time.
// Adjacent day windows such as 18:00-24:00 and 00:00-02:00 are joined.
func IsOpen(s *domain.Schedule, start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}
	return domain.CoveredBy(domain.Interval{Start: start, End: end}, OpenIntervals(s, start, end))
}

// CapacityHours total open time inside [from, to)
func CapacityHours(s *domain.Schedule, from, to time.Time) time.Duration {
	return domain.TotalDuration(OpenIntervals(s, from, to))
}

// FreeSlots open windows inside [from, to) not taken by busy intervals
func FreeSlots(s *domain.Schedule, busy []domain.Interval, from, to time.Time) []domain.Interval {
	return domain.SubtractIntervals(OpenIntervals(s, from, to), busy)
}

func nextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

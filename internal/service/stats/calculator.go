package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

var (
	secondsPerHour = decimal.NewFromInt(3600)
	hundred        = decimal.NewFromInt(100)
)

// MonthPeriod returns [first day 00:00, first day of next month 00:00) of the
// calendar month containing now, in loc.
func MonthPeriod(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// Calculate aggregates settled reservations against capacity for [from, to).
// Reservation durations are clipped to the period; revenue counts the full price
// of every reservation that intersects it.
func Calculate(ownerID int64, from, to time.Time, reservations []*domain.Reservation, capacity time.Duration) domain.OccupancyStats {
	period := domain.Interval{Start: from, End: to}

	var reserved time.Duration
	revenue := decimal.Zero
	count := 0

	for _, r := range reservations {
		if !r.IsSettled() {
			continue
		}
		clipped, ok := r.Interval().Clip(period)
		if !ok {
			continue
		}
		reserved += clipped.Duration()
		revenue = revenue.Add(r.TotalPrice)
		count++
	}

	reservedSeconds := seconds(reserved)
	capacitySeconds := seconds(capacity)

	rate := decimal.Zero
	if capacitySeconds.IsPositive() {
		rate = reservedSeconds.Mul(hundred).Div(capacitySeconds).Round(2)
	}

	return domain.OccupancyStats{
		OwnerID:          ownerID,
		PeriodStart:      from,
		PeriodEnd:        to,
		ReservedHours:    reservedSeconds.Div(secondsPerHour).Round(2),
		AvailableHours:   capacitySeconds.Div(secondsPerHour).Round(2),
		OccupancyRate:    rate,
		Revenue:          revenue.Round(2),
		ReservationCount: count,
	}
}

func seconds(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second))
}

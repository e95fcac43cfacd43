package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// 2025-03-10 is a Monday
func day(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.UTC)
}

func rule(wd time.Weekday, open, close string) domain.OperatingHoursRule {
	return domain.OperatingHoursRule{
		DayOfWeek: wd,
		OpenTime:  domain.MustClockTime(open),
		CloseTime: domain.MustClockTime(close),
	}
}

func schedule(t *testing.T, rules []domain.OperatingHoursRule, exc ...domain.AvailabilityException) *domain.Schedule {
	t.Helper()
	s, err := domain.NewSchedule(rules, exc, time.UTC)
	require.NoError(t, err)
	return s
}

func TestIsOpen_InsideRule(t *testing.T) {
	s := schedule(t, []domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")})

	assert.True(t, IsOpen(s, day(10, 9, 0), day(10, 18, 0)))
	assert.True(t, IsOpen(s, day(10, 10, 0), day(10, 11, 0)))
	assert.False(t, IsOpen(s, day(10, 8, 30), day(10, 10, 0)))
	assert.False(t, IsOpen(s, day(10, 17, 0), day(10, 18, 30)))
	assert.False(t, IsOpen(s, day(11, 10, 0), day(11, 11, 0)), "tuesday has no rule")
}

func TestIsOpen_InvalidWindow(t *testing.T) {
	s := schedule(t, []domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")})

	assert.False(t, IsOpen(s, day(10, 11, 0), day(10, 10, 0)))
	assert.False(t, IsOpen(s, day(10, 11, 0), day(10, 11, 0)))
}

func TestIsOpen_AcrossMidnight(t *testing.T) {
	s := schedule(t, []domain.OperatingHoursRule{
		rule(time.Monday, "18:00", "24:00"),
		rule(time.Tuesday, "00:00", "02:00"),
	})

	assert.True(t, IsOpen(s, day(10, 22, 0), day(11, 2, 0)))
	assert.False(t, IsOpen(s, day(10, 22, 0), day(11, 3, 0)))
}

func TestIsOpen_AcrossMidnightClosedNextDay(t *testing.T) {
	s := schedule(t, []domain.OperatingHoursRule{rule(time.Monday, "18:00", "24:00")})

	assert.True(t, IsOpen(s, day(10, 22, 0), day(11, 0, 0)))
	assert.False(t, IsOpen(s, day(10, 22, 0), day(11, 1, 0)))
}

func TestIsOpen_BlockedException(t *testing.T) {
	s := schedule(t,
		[]domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")},
		domain.AvailabilityException{Start: day(10, 12, 0), End: day(10, 14, 0), Blocked: true},
	)

	assert.True(t, IsOpen(s, day(10, 10, 0), day(10, 12, 0)))
	assert.False(t, IsOpen(s, day(10, 11, 0), day(10, 13, 0)))
	assert.True(t, IsOpen(s, day(10, 14, 0), day(10, 15, 0)))
}

func TestIsOpen_UnblockedExceptionOpensClosedDay(t *testing.T) {
	s := schedule(t,
		[]domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")},
		domain.AvailabilityException{Start: day(15, 10, 0), End: day(15, 16, 0)},
	)

	assert.True(t, IsOpen(s, day(15, 10, 0), day(15, 12, 0)), "saturday opened by exception")
	assert.False(t, IsOpen(s, day(15, 15, 0), day(15, 17, 0)))
}

func TestIsOpen_UnblockedExtendsRule(t *testing.T) {
	s := schedule(t,
		[]domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")},
		domain.AvailabilityException{Start: day(10, 18, 0), End: day(10, 21, 0)},
	)

	assert.True(t, IsOpen(s, day(10, 17, 0), day(10, 20, 0)))
}

func TestIsOpen_BlockedWinsOverUnblocked(t *testing.T) {
	s := schedule(t,
		nil,
		domain.AvailabilityException{Start: day(10, 9, 0), End: day(10, 18, 0)},
		domain.AvailabilityException{Start: day(10, 12, 0), End: day(10, 13, 0), Blocked: true},
	)

	assert.True(t, IsOpen(s, day(10, 9, 0), day(10, 12, 0)))
	assert.False(t, IsOpen(s, day(10, 11, 0), day(10, 14, 0)))
}

func TestIsOpen_WholeDayBlockedByDateRange(t *testing.T) {
	closed, err := domain.NewDateRangeException(1, day(10, 0, 0), day(10, 0, 0), time.UTC, true, nil)
	require.NoError(t, err)

	s := schedule(t, []domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")}, closed)

	assert.False(t, IsOpen(s, day(10, 10, 0), day(10, 11, 0)))
	assert.True(t, IsOpen(s, day(17, 10, 0), day(17, 11, 0)), "next monday unaffected")
}

func TestIsOpen_LocalTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	s, err := domain.NewSchedule([]domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")}, nil, loc)
	require.NoError(t, err)

	// 09:00 local is 12:00 UTC
	assert.True(t, IsOpen(s, day(10, 12, 0), day(10, 13, 0)))
	assert.False(t, IsOpen(s, day(10, 9, 0), day(10, 10, 0)))
}

func TestIsOpen_DSTGap(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2025-03-30 is a Sunday, clocks jump 02:00 -> 03:00
	s, err := domain.NewSchedule([]domain.OperatingHoursRule{rule(time.Sunday, "00:00", "24:00")}, nil, loc)
	require.NoError(t, err)

	from := time.Date(2025, 3, 30, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, loc)

	assert.Equal(t, 23*time.Hour, CapacityHours(s, from, to))
	assert.True(t, IsOpen(s, time.Date(2025, 3, 30, 1, 0, 0, 0, loc), time.Date(2025, 3, 30, 4, 0, 0, 0, loc)))
}

func TestCapacityHours(t *testing.T) {
	s := schedule(t,
		[]domain.OperatingHoursRule{
			rule(time.Monday, "09:00", "17:00"),
			rule(time.Tuesday, "09:00", "17:00"),
		},
		domain.AvailabilityException{Start: day(11, 9, 0), End: day(11, 13, 0), Blocked: true},
	)

	assert.Equal(t, 12*time.Hour, CapacityHours(s, day(10, 0, 0), day(17, 0, 0)))
	assert.Equal(t, 4*time.Hour, CapacityHours(s, day(10, 13, 0), day(11, 0, 0)), "clipped to period")
	assert.Equal(t, time.Duration(0), CapacityHours(s, day(12, 0, 0), day(13, 0, 0)))
}

func TestFreeSlots(t *testing.T) {
	s := schedule(t, []domain.OperatingHoursRule{rule(time.Monday, "09:00", "18:00")})

	busy := []domain.Interval{
		{Start: day(10, 10, 0), End: day(10, 11, 0)},
		{Start: day(10, 11, 0), End: day(10, 12, 0)},
		{Start: day(10, 15, 0), End: day(10, 16, 0)},
	}

	got := FreeSlots(s, busy, day(10, 0, 0), day(11, 0, 0))

	assert.Equal(t, []domain.Interval{
		{Start: day(10, 9, 0), End: day(10, 10, 0)},
		{Start: day(10, 12, 0), End: day(10, 15, 0)},
		{Start: day(10, 16, 0), End: day(10, 18, 0)},
	}, got)
}

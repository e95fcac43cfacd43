package domain

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day in minutes since midnight.
// 24:00 (1440) is valid as a closing time.
type ClockTime int

// ParseClockTime parses "HH:MM", accepting "24:00"
func ParseClockTime(s string) (ClockTime, error) {
	if s == "24:00" {
		return ClockTime(MinutesPerDay), nil
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustClockTime is ParseClockTime for constants and tests
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On returns the instant of this clock time on the given local date.
// Built through time.Date so DST shifts resolve the way the location defines them.
func (c ClockTime) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, int(c)/60, int(c)%60, 0, 0, loc)
}

// OperatingHoursRule opens a room (or every room of a studio) on one weekday
type OperatingHoursRule struct {
	ID        int64
	StudioID  int64
	RoomID    *int64 // nil = studio scope
	DayOfWeek time.Weekday
	OpenTime  ClockTime
	CloseTime ClockTime
}

// Validate checks the open/close pair
func (r OperatingHoursRule) Validate() error {
	if r.OpenTime < 0 || r.CloseTime > ClockTime(MinutesPerDay) {
		return fmt.Errorf("%w: clock time out of range", ErrInvalidInterval)
	}
	if r.CloseTime <= r.OpenTime {
		return fmt.Errorf("%w: close %s must be after open %s", ErrInvalidInterval, r.CloseTime, r.OpenTime)
	}
	return nil
}

// AvailabilityException overrides the weekly rule for the window [Start, End).
// Blocked removes availability, otherwise the window is opened.
type AvailabilityException struct {
	ID      int64
	RoomID  int64
	Start   time.Time
	End     time.Time
	Blocked bool
	Reason  *string
}

// Interval returns the exception window
func (e AvailabilityException) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// NewDateRangeException covers whole local dates from..to inclusive
func NewDateRangeException(roomID int64, from, to time.Time, loc *time.Location, blocked bool, reason *string) (AvailabilityException, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	end := time.Date(to.Year(), to.Month(), to.Day()+1, 0, 0, 0, 0, loc)
	if !start.Before(end) {
		return AvailabilityException{}, ErrInvalidInterval
	}
	return AvailabilityException{
		RoomID:  roomID,
		Start:   start,
		End:     end,
		Blocked: blocked,
		Reason:  reason,
	}, nil
}

// Schedule is everything needed to answer availability questions for one room
type Schedule struct {
	Rules      map[time.Weekday]OperatingHoursRule
	Exceptions []AvailabilityException
	Location   *time.Location
}

// NewSchedule indexes rules by weekday. Room-scoped rules, when present,
// replace studio-scoped ones.
func NewSchedule(rules []OperatingHoursRule, exceptions []AvailabilityException, loc *time.Location) (*Schedule, error) {
	if loc == nil {
		loc = time.UTC
	}

	hasRoomScope := false
	for _, r := range rules {
		if r.RoomID != nil {
			hasRoomScope = true
			break
		}
	}

	byDay := make(map[time.Weekday]OperatingHoursRule, 7)
	for _, r := range rules {
		if hasRoomScope && r.RoomID == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byDay[r.DayOfWeek]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDayRule, r.DayOfWeek)
		}
		byDay[r.DayOfWeek] = r
	}

	return &Schedule{
		Rules:      byDay,
		Exceptions: exceptions,
		Location:   loc,
	}, nil
}

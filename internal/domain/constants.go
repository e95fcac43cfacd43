package domain

import "time"

// Default engine values
const (
	DefaultAutoConfirmAfter = 30 * time.Minute
	DefaultSweepInterval    = 5 * time.Minute
	DefaultRejectReason     = "rejected by studio owner"
)

// Business validation constants
const (
	MaxCancelReasonLength = 500
	MaxNotesLength        = 1000
	MaxReservationLength  = 24 * time.Hour
	MinutesPerDay         = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a room. Reservations in these statuses
// must never overlap on the same room.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// SettledStatuses statuses counted as occupied time and revenue in owner stats
var SettledStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// StatusStrings converts statuses for SQL filters
func StatusStrings(statuses []ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

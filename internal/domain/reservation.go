package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no_show"
)

// Confirmation sources
const (
	ConfirmedByOwner  = "owner"
	ConfirmedBySystem = "system"
)

// Reservation represents a booking of a room for the half-open window [Start, End)
type Reservation struct {
	ID         int64
	RoomID     int64
	StudioID   int64 // denormalized from the room, used for policy lookup and owner queues
	CustomerID int64
	Start      time.Time
	End        time.Time
	Status     ReservationStatus
	TotalPrice decimal.Decimal

	Notes       *string
	ArtistName  *string
	Instruments *string

	ConfirmedBy  *string
	CancelReason *string
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the reservation window
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Duration returns the length of the reservation window
func (r *Reservation) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// IsActive returns true if the reservation occupies its room
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// IsSettled returns true if the reservation counts toward occupancy and revenue
func (r *Reservation) IsSettled() bool {
	for _, s := range SettledStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the customer may still cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// PendingFor returns how long the reservation has waited for approval
func (r *Reservation) PendingFor(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

// IsActive returns true for statuses that block the room
func (s ReservationStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known status
func (s ReservationStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// ReservationFilter selects reservations of a room or a studio
type ReservationFilter struct {
	RoomID   *int64
	StudioID *int64
	From     *time.Time // window intersects [From, To)
	To       *time.Time
	Statuses []ReservationStatus // empty = any status
}

// StatusUpdate describes a compare-and-swap status change
type StatusUpdate struct {
	From         ReservationStatus
	To           ReservationStatus
	UpdatedAt    time.Time
	ConfirmedBy  *string
	CancelledAt  *time.Time
	CancelReason *string
}

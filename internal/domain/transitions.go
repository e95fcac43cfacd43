package domain

import "fmt"

// transitions is the allowed-edge table of the reservation state machine
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition reports whether from -> to is an allowed edge
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing edges
func (s ReservationStatus) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// TransitionError reports an illegal state edge together with the current and
// attempted status. It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	ReservationID int64
	From          ReservationStatus
	To            ReservationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: reservation %d cannot move from %s to %s",
		ErrInvalidTransition, e.ReservationID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// CheckTransition returns a *TransitionError if from -> to is not allowed
func CheckTransition(id int64, from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{ReservationID: id, From: from, To: to}
	}
	return nil
}

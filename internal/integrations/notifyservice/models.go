package notifyservice

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Event тело запроса к сервису уведомлений
type Event struct {
	Event         string    `json:"event"`
	OccurredAt    time.Time `json:"occurredAt"`
	ReservationID int64     `json:"reservationId"`
	RoomID        int64     `json:"roomId"`
	StudioID      int64     `json:"studioId"`
	CustomerID    int64     `json:"customerId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"totalPrice"`
	Reason        *string   `json:"reason,omitempty"`
}

func newEvent(event string, r *domain.Reservation, now time.Time) Event {
	return Event{
		Event:         event,
		OccurredAt:    now,
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		StudioID:      r.StudioID,
		CustomerID:    r.CustomerID,
		Start:         r.Start,
		End:           r.End,
		Status:        string(r.Status),
		TotalPrice:    r.TotalPrice.StringFixed(2),
		Reason:        r.CancelReason,
	}
}

package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// SlotResponse свободное окно
type SlotResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	RoomID int64          `json:"roomId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

func FromIntervals(roomID int64, date time.Time, slots []domain.Interval) *FreeSlotsResponse {
	resp := &FreeSlotsResponse{
		RoomID: roomID,
		Date:   date.Format(domain.DateFormat),
		Slots:  make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Start:           s.Start.Format(time.RFC3339),
			End:             s.End.Format(time.RFC3339),
			DurationMinutes: int(s.Duration().Minutes()),
		})
	}
	return resp
}

package get_free_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

type CalendarService interface {
	Location() *time.Location
	FreeSlots(ctx context.Context, roomID int64, date time.Time) ([]domain.Interval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_pending_reservations

import (
	"context"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

type ReservationService interface {
	ListPendingByStudio(ctx context.Context, studioID int64) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

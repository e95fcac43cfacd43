package get_room_reservations

import (
	"context"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

type ReservationService interface {
	ListByRoom(ctx context.Context, req *models.ListByRoomRequest) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

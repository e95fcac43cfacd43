package reject_reservation

import (
	"context"

	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

type ReservationService interface {
	Reject(ctx context.Context, id int64, reason string) (*models.TransitionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

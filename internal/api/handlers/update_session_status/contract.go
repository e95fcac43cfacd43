package update_session_status

import (
	"context"

	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

type ReservationService interface {
	Start(ctx context.Context, id int64) (*models.TransitionResult, error)
	Complete(ctx context.Context, id int64) (*models.TransitionResult, error)
	MarkNoShow(ctx context.Context, id int64) (*models.TransitionResult, error)
	Abort(ctx context.Context, id int64, reason string) (*models.TransitionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	createReservation "github.com/m04kA/SMC-StudioReservations/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// SlotFinder подбирает альтернативные окна при конфликте
type SlotFinder interface {
	FreeSlots(ctx context.Context, roomID int64, date time.Time) ([]domain.Interval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

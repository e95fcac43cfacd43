package calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// CatalogRepository источник правил работы комнаты
type CatalogRepository interface {
	GetOperatingRules(ctx context.Context, roomID int64) ([]domain.OperatingHoursRule, error)
	GetExceptions(ctx context.Context, roomID int64, from, to time.Time) ([]domain.AvailabilityException, error)
}

// ReservationRepository источник занятых интервалов
type ReservationRepository interface {
	GetActiveByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

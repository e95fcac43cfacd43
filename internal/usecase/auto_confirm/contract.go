package auto_confirm

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

// ReservationRepository источник просроченных PENDING-бронирований
type ReservationRepository interface {
	GetPendingOlderThan(ctx context.Context, cutoff time.Time, afterID int64, limit int) ([]*domain.Reservation, error)
}

// ReservationService переводит отдельное бронирование в CONFIRMED
type ReservationService interface {
	AutoConfirmIfExpired(ctx context.Context, id int64, threshold time.Duration) (*models.TransitionResult, error)
}

// MetricsRecorder учёт прогонов
type MetricsRecorder interface {
	ObserveSweep(confirmed int, elapsed time.Duration, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, update domain.StatusUpdate) error
}

// PolicyRepository источник политики отмены студии
// Возвращает nil, nil, если политика не задана
type PolicyRepository interface {
	GetCancellationPolicy(ctx context.Context, studioID int64) (*domain.CancellationPolicy, error)
}

// NotificationSender отправка событий во внешний сервис уведомлений
type NotificationSender interface {
	Notify(ctx context.Context, event string, reservation *domain.Reservation) error
}

// MetricsRecorder учёт переходов статусов
type MetricsRecorder interface {
	ObserveTransition(from, to string)
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

package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetActiveByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	LockRoom(ctx context.Context, roomID int64) error
	GetRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	GetSpecialPrices(ctx context.Context, roomID int64, from, to time.Time) ([]domain.SpecialPriceRule, error)
}

// Calendar проверка рабочего времени комнаты
type Calendar interface {
	IsOpen(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationSender отправка событий во внешний сервис уведомлений
type NotificationSender interface {
	Notify(ctx context.Context, event string, reservation *domain.Reservation) error
}

// MetricsRecorder учёт отказов по пересечению
type MetricsRecorder interface {
	ObserveConflict()
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

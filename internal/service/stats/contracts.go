package stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// CatalogRepository источник комнат владельца
type CatalogRepository interface {
	GetActiveRoomsByOwner(ctx context.Context, ownerID int64) ([]*domain.Room, error)
}

// ReservationRepository источник учитываемых бронирований
type ReservationRepository interface {
	GetSettledByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// CapacityProvider рабочее время комнаты за период
type CapacityProvider interface {
	CapacityHours(ctx context.Context, roomID int64, from, to time.Time) (time.Duration, error)
}

// TxManager выполняет чтения статистики в одном снимке
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

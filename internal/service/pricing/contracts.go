package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// CatalogRepository источник комнат и специальных цен
type CatalogRepository interface {
	GetRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	GetSpecialPrices(ctx context.Context, roomID int64, from, to time.Time) ([]domain.SpecialPriceRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

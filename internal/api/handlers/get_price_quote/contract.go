package get_price_quote

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

type PricingService interface {
	Quote(ctx context.Context, roomID int64, start, end time.Time) (*domain.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

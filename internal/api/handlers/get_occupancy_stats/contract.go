package get_occupancy_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

type StatsService interface {
	GetOwnerOccupancyStats(ctx context.Context, ownerID int64, from, to time.Time) (*domain.OccupancyStats, error)
}

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

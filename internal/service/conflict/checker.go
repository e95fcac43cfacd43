package conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Overlaps returns the first active reservation intersecting [start, end),
// skipping excludeID. Touching windows are not conflicts.
func Overlaps(existing []*domain.Reservation, start, end time.Time, excludeID *int64) *domain.Reservation {
	window := domain.Interval{Start: start, End: end}
	for _, r := range existing {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if r.Interval().Overlaps(window) {
			return r
		}
	}
	return nil
}

// Checker проверка пересечений по данным репозитория
type Checker struct {
	reservationRepo ReservationRepository
}

// NewChecker создает новый экземпляр проверки пересечений
func NewChecker(reservationRepo ReservationRepository) *Checker {
	return &Checker{reservationRepo: reservationRepo}
}

// HasConflict проверяет, пересекается ли [start, end) с активным бронированием комнаты
// Внутри транзакции репозиторий читает строки с блокировкой
func (c *Checker) HasConflict(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) (bool, error) {
	existing, err := c.reservationRepo.GetActiveByRoom(ctx, roomID, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - repository error: %v", ErrInternal, err)
	}
	return Overlaps(existing, start, end, excludeID) != nil, nil
}

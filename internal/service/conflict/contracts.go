package conflict

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// ReservationRepository источник активных бронирований комнаты
type ReservationRepository interface {
	GetActiveByRoom(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Reservation, error)
}

package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Service статистика загрузки комнат владельца
type Service struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	capacity        CapacityProvider
	txManager       TxManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	capacity CapacityProvider,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		capacity:        capacity,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetOwnerOccupancyStats загрузка комнат владельца за период [from, to)
// Доступное время считается по календарю каждой активной комнаты
func (s *Service) GetOwnerOccupancyStats(ctx context.Context, ownerID int64, from, to time.Time) (*domain.OccupancyStats, error) {
	s.logger.Info("GetOwnerOccupancyStats: owner=%d, period=%s to %s",
		ownerID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	var (
		rooms        []*domain.Room
		capacity     time.Duration
		reservations []*domain.Reservation
	)
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rooms, err = s.catalogRepo.GetActiveRoomsByOwner(ctx, ownerID)
		if err != nil {
			s.logger.Error("GetOwnerOccupancyStats: failed to get rooms for owner=%d: %v", ownerID, err)
			return fmt.Errorf("%w: GetOwnerOccupancyStats - rooms: %v", ErrInternal, err)
		}

		for _, room := range rooms {
			hours, err := s.capacity.CapacityHours(ctx, room.ID, from, to)
			if err != nil {
				s.logger.Error("GetOwnerOccupancyStats: failed to get capacity for room=%d: %v", room.ID, err)
				return fmt.Errorf("%w: GetOwnerOccupancyStats - capacity: %v", ErrInternal, err)
			}
			capacity += hours
		}

		reservations, err = s.reservationRepo.GetSettledByOwner(ctx, ownerID, from, to)
		if err != nil {
			s.logger.Error("GetOwnerOccupancyStats: failed to get reservations for owner=%d: %v", ownerID, err)
			return fmt.Errorf("%w: GetOwnerOccupancyStats - reservations: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("GetOwnerOccupancyStats: read transaction failed for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetOwnerOccupancyStats - transaction: %v", ErrInternal, err)
	}

	stats := Calculate(ownerID, from, to, reservations, capacity)
	s.logger.Info("GetOwnerOccupancyStats: owner=%d rooms=%d reserved=%sh available=%sh rate=%s%%",
		ownerID, len(rooms), stats.ReservedHours.String(), stats.AvailableHours.String(), stats.OccupancyRate.StringFixed(2))

	return &stats, nil
}

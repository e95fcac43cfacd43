package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Service расчёт стоимости бронирования по данным каталога
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Quote рассчитывает стоимость окна [start, end) для комнаты
func (s *Service) Quote(ctx context.Context, roomID int64, start, end time.Time) (*domain.Quote, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	room, err := s.catalogRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Quote: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Quote: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: Quote - room: %v", ErrInternal, err)
	}

	rules, err := s.catalogRepo.GetSpecialPrices(ctx, roomID, start, end)
	if err != nil {
		s.logger.Error("Quote: failed to get special prices for room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: Quote - special prices: %v", ErrInternal, err)
	}

	quote := Price(room, rules, start, end)
	s.logger.Info("Quote: room=%d total=%s segments=%d", roomID, quote.Total.StringFixed(2), len(quote.Segments))
	return &quote, nil
}

package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Service календарь работы комнат поверх репозитория
type Service struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса календаря
// location - часовой пояс, в котором заданы часы работы студий
func NewService(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		location:        location,
		logger:          logger,
	}
}

// Location часовой пояс календаря
func (s *Service) Location() *time.Location {
	return s.location
}

// LoadSchedule загружает правила и исключения комнаты для периода [from, to)
func (s *Service) LoadSchedule(ctx context.Context, roomID int64, from, to time.Time) (*domain.Schedule, error) {
	rules, err := s.catalogRepo.GetOperatingRules(ctx, roomID)
	if err != nil {
		s.logger.Error("LoadSchedule: failed to get operating rules for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: LoadSchedule - operating rules: %v", ErrInternal, err)
	}

	exceptions, err := s.catalogRepo.GetExceptions(ctx, roomID, from, to)
	if err != nil {
		s.logger.Error("LoadSchedule: failed to get exceptions for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: LoadSchedule - exceptions: %v", ErrInternal, err)
	}

	schedule, err := domain.NewSchedule(rules, exceptions, s.location)
	if err != nil {
		s.logger.Error("LoadSchedule: invalid schedule for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return schedule, nil
}

// IsOpen проверяет, что окно [start, end) целиком попадает в рабочее время комнаты
func (s *Service) IsOpen(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	schedule, err := s.LoadSchedule(ctx, roomID, start, end)
	if err != nil {
		return false, err
	}
	return IsOpen(schedule, start, end), nil
}

// CapacityHours суммарное рабочее время комнаты в периоде
func (s *Service) CapacityHours(ctx context.Context, roomID int64, from, to time.Time) (time.Duration, error) {
	schedule, err := s.LoadSchedule(ctx, roomID, from, to)
	if err != nil {
		return 0, err
	}
	return CapacityHours(schedule, from, to), nil
}

// FreeSlots свободные окна комнаты на локальную дату
func (s *Service) FreeSlots(ctx context.Context, roomID int64, date time.Time) ([]domain.Interval, error) {
	local := date.In(s.location)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	to := nextDay(from)

	schedule, err := s.LoadSchedule(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetActiveByRoom(ctx, roomID, from, to)
	if err != nil {
		s.logger.Error("FreeSlots: failed to get reservations for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: FreeSlots - reservations: %v", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(reservations))
	for _, r := range reservations {
		busy = append(busy, r.Interval())
	}

	slots := FreeSlots(schedule, busy, from, to)
	s.logger.Info("FreeSlots: room=%d date=%s free=%d busy=%d",
		roomID, from.Format(domain.DateFormat), len(slots), len(busy))
	return slots, nil
}

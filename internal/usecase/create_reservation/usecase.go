package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudioReservations/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-StudioReservations/internal/service/conflict"
	"github.com/m04kA/SMC-StudioReservations/internal/service/pricing"
	"github.com/m04kA/SMC-StudioReservations/pkg/keymutex"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	calendar        Calendar
	txManager       TransactionManager
	notifier        NotificationSender
	metrics         MetricsRecorder
	roomLocks       *keymutex.KeyMutex[int64]
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	calendar Calendar,
	txManager TransactionManager,
	notifier NotificationSender,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		calendar:        calendar,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		roomLocks:       keymutex.New[int64](),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются атомарно для комнаты:
// внутри процесса под мьютексом комнаты, в БД - в сериализуемой транзакции
// с блокировкой строки комнаты (FOR UPDATE)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, room=%d, window=[%s, %s)",
		req.CustomerID, req.RoomID, req.Start.Format(timeLayout), req.End.Format(timeLayout))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.Start, now); err != nil {
		uc.logger.Warn("CreateReservation: start %s is before now %s", req.Start.Format(timeLayout), now.Format(timeLayout))
		return nil, err
	}

	// 3. Сериализуем создания в одну комнату внутри процесса
	unlock := uc.roomLocks.Lock(req.RoomID)
	defer unlock()

	var result *domain.Reservation
	var quote domain.Quote

	// 4. Проверка и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем строку комнаты
		if err := uc.catalogRepo.LockRoom(txCtx, req.RoomID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateReservation: failed to lock room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to lock room: %v", ErrInternal, err)
		}

		// 4.2. Получаем комнату с базовым тарифом
		room, err := uc.catalogRepo.GetRoom(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !room.Active {
			uc.logger.Warn("CreateReservation: room id=%d is inactive", req.RoomID)
			return ErrRoomInactive
		}

		// 4.3. Окно должно целиком попадать в рабочее время
		open, err := uc.calendar.IsOpen(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check operating hours for room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to check operating hours: %v", ErrInternal, err)
		}
		if !open {
			uc.logger.Warn("CreateReservation: window is outside operating hours of room id=%d", req.RoomID)
			return domain.ErrOutsideOperatingHours
		}

		// 4.4. Активные бронирования комнаты, пересекающие окно (с блокировкой)
		existing, err := uc.reservationRepo.GetActiveByRoom(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations for room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		if clash := conflict.Overlaps(existing, req.Start, req.End, nil); clash != nil {
			uc.logger.Warn("CreateReservation: window overlaps reservation id=%d [%s, %s)",
				clash.ID, clash.Start.Format(timeLayout), clash.End.Format(timeLayout))
			return domain.ErrSchedulingConflict
		}

		// 4.5. Расчёт стоимости
		rules, err := uc.catalogRepo.GetSpecialPrices(txCtx, req.RoomID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get special prices for room id=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get special prices: %v", ErrInternal, err)
		}
		quote = pricing.Price(room, rules, req.Start, req.End)

		// 4.6. Сохраняем бронирование в статусе PENDING
		reservation := &domain.Reservation{
			RoomID:      room.ID,
			StudioID:    room.StudioID,
			CustomerID:  req.CustomerID,
			Start:       req.Start,
			End:         req.End,
			Status:      domain.StatusPending,
			TotalPrice:  quote.Total,
			Notes:       req.Notes,
			ArtistName:  req.ArtistName,
			Instruments: req.Instruments,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, domain.ErrSchedulingConflict) {
				return err
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сбой сериализации при фиксации означает, что конкурент занял окно
		if errors.Is(err, domain.ErrSchedulingConflict) || reservationRepo.IsConflict(err) {
			if uc.metrics != nil {
				uc.metrics.ObserveConflict()
			}
			return nil, fmt.Errorf("%w: room=%d", domain.ErrSchedulingConflict, req.RoomID)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, total=%s",
		result.ID, result.TotalPrice.StringFixed(2))

	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, domain.EventReservationCreated, result); err != nil {
			uc.logger.Warn("CreateReservation: failed to notify about reservation id=%d: %v", result.ID, err)
		}
	}

	return &Response{
		Reservation: result,
		Segments:    quote.Segments,
	}, nil
}

const timeLayout = "2006-01-02T15:04Z07:00"

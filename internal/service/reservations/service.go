package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/cancellation"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-StudioReservations/pkg/ptr"
)

// maxAttempts число попыток compare-and-swap перехода: исходная и одна повторная после ErrStaleState
const maxAttempts = 2

// Service машина состояний бронирований
type Service struct {
	reservationRepo ReservationRepository
	policyRepo      PolicyRepository
	notifier        NotificationSender
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	policyRepo PolicyRepository,
	notifier NotificationSender,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		policyRepo:      policyRepo,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return reservation, nil
}

// ListByRoom бронирования комнаты за период
// ActiveOnly оставляет только PENDING, CONFIRMED и IN_PROGRESS
func (s *Service) ListByRoom(ctx context.Context, req *models.ListByRoomRequest) ([]*domain.Reservation, error) {
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter := domain.ReservationFilter{
		RoomID: ptr.Ptr(req.RoomID),
		From:   req.From,
		To:     req.To,
	}
	if req.ActiveOnly {
		filter.Statuses = domain.ActiveStatuses
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByRoom: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: ListByRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRoom: fetched %d reservations for room=%d", len(list), req.RoomID)
	return list, nil
}

// ListPendingByStudio очередь бронирований студии, ожидающих подтверждения владельцем
func (s *Service) ListPendingByStudio(ctx context.Context, studioID int64) ([]*domain.Reservation, error) {
	if studioID <= 0 {
		return nil, fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		StudioID: ptr.Ptr(studioID),
		Statuses: []domain.ReservationStatus{domain.StatusPending},
	})
	if err != nil {
		s.logger.Error("ListPendingByStudio: repository error for studio=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: ListPendingByStudio - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPendingByStudio: fetched %d pending reservations for studio=%d", len(list), studioID)
	return list, nil
}

// Approve подтверждение владельцем: PENDING -> CONFIRMED
// Повторное подтверждение уже подтверждённого бронирования не является ошибкой
func (s *Service) Approve(ctx context.Context, id int64) (*models.TransitionResult, error) {
	res, err := s.transition(ctx, "Approve", id, domain.StatusConfirmed, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if r.Status == domain.StatusConfirmed {
			return nil, nil
		}
		if err := requireFrom(r, domain.StatusConfirmed, domain.StatusPending); err != nil {
			return nil, err
		}
		return &domain.StatusUpdate{
			ConfirmedBy: ptr.Ptr(domain.ConfirmedByOwner),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if res.Changed {
		s.notify(ctx, domain.EventReservationConfirmed, res.Reservation)
	}
	return res, nil
}

// Reject отклонение владельцем: только PENDING -> CANCELLED
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*models.TransitionResult, error) {
	if reason == "" {
		reason = domain.DefaultRejectReason
	}
	if len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	res, err := s.transition(ctx, "Reject", id, domain.StatusCancelled, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if err := requireFrom(r, domain.StatusCancelled, domain.StatusPending); err != nil {
			return nil, err
		}
		return &domain.StatusUpdate{
			CancelledAt:  ptr.Ptr(now),
			CancelReason: ptr.Ptr(reason),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.EventReservationRejected, res.Reservation)
	return res, nil
}

// Cancel отмена клиентом: PENDING|CONFIRMED -> CANCELLED с расчётом возврата
// Политика студии берётся снимком на момент отмены; её отсутствие не ошибка
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.CancelResult, error) {
	if len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	var refund domain.Refund
	res, err := s.transition(ctx, "Cancel", id, domain.StatusCancelled, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if !r.CanBeCancelled() {
			return nil, &domain.TransitionError{ReservationID: r.ID, From: r.Status, To: domain.StatusCancelled}
		}

		policy, err := s.policyRepo.GetCancellationPolicy(ctx, r.StudioID)
		if err != nil {
			s.logger.Error("Cancel: failed to get cancellation policy for studio=%d: %v", r.StudioID, err)
			return nil, fmt.Errorf("%w: Cancel - policy repository error: %v", ErrInternal, err)
		}

		refund = cancellation.RefundFraction(policy.Snapshot(), now, r.Start)
		if refund.PolicyMissing {
			s.logger.Warn("Cancel: studio=%d has no cancellation policy, refund is 0 for reservation id=%d", r.StudioID, r.ID)
		}

		update := &domain.StatusUpdate{CancelledAt: ptr.Ptr(now)}
		if reason != "" {
			update.CancelReason = ptr.Ptr(reason)
		}
		return update, nil
	})
	if err != nil {
		return nil, err
	}

	amount := cancellation.RefundAmount(res.Reservation.TotalPrice, refund)
	s.logger.Info("Cancel: reservation id=%d refund fraction=%s amount=%s",
		id, refund.Fraction.String(), amount.StringFixed(2))

	s.notify(ctx, domain.EventReservationCancelled, res.Reservation)

	return &models.CancelResult{
		TransitionResult: *res,
		RefundFraction:   refund.Fraction,
		RefundAmount:     amount,
		PolicyMissing:    refund.PolicyMissing,
	}, nil
}

// AutoConfirmIfExpired подтверждает PENDING, ожидающее дольше threshold
// До порога и для уже подтвержденного - no-op без ошибки, из прочих статусов - ErrInvalidTransition
func (s *Service) AutoConfirmIfExpired(ctx context.Context, id int64, threshold time.Duration) (*models.TransitionResult, error) {
	res, err := s.transition(ctx, "AutoConfirm", id, domain.StatusConfirmed, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if r.Status == domain.StatusConfirmed {
			return nil, nil
		}
		if err := requireFrom(r, domain.StatusConfirmed, domain.StatusPending); err != nil {
			return nil, err
		}
		if r.PendingFor(now) < threshold {
			return nil, nil
		}
		return &domain.StatusUpdate{
			ConfirmedBy: ptr.Ptr(domain.ConfirmedBySystem),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if res.Changed {
		s.notify(ctx, domain.EventReservationConfirmed, res.Reservation)
	}
	return res, nil
}

// Start начало сессии: CONFIRMED -> IN_PROGRESS
func (s *Service) Start(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.simpleTransition(ctx, "Start", id, domain.StatusConfirmed, domain.StatusInProgress)
}

// Complete завершение сессии: IN_PROGRESS -> COMPLETED
func (s *Service) Complete(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.simpleTransition(ctx, "Complete", id, domain.StatusInProgress, domain.StatusCompleted)
}

// MarkNoShow клиент не пришёл: CONFIRMED -> NO_SHOW
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return s.simpleTransition(ctx, "MarkNoShow", id, domain.StatusConfirmed, domain.StatusNoShow)
}

// Abort прерывание идущей сессии: IN_PROGRESS -> CANCELLED, без возврата
func (s *Service) Abort(ctx context.Context, id int64, reason string) (*models.TransitionResult, error) {
	if len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	res, err := s.transition(ctx, "Abort", id, domain.StatusCancelled, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if err := requireFrom(r, domain.StatusCancelled, domain.StatusInProgress); err != nil {
			return nil, err
		}
		update := &domain.StatusUpdate{CancelledAt: ptr.Ptr(now)}
		if reason != "" {
			update.CancelReason = ptr.Ptr(reason)
		}
		return update, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.EventReservationCancelled, res.Reservation)
	return res, nil
}

func (s *Service) simpleTransition(ctx context.Context, op string, id int64, from, to domain.ReservationStatus) (*models.TransitionResult, error) {
	return s.transition(ctx, op, id, to, func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error) {
		if err := requireFrom(r, to, from); err != nil {
			return nil, err
		}
		return &domain.StatusUpdate{}, nil
	})
}

// prepareFunc решает, нужен ли переход для текущего состояния
// nil update без ошибки означает no-op
type prepareFunc func(r *domain.Reservation, now time.Time) (*domain.StatusUpdate, error)

// transition читает бронирование, применяет prepare и пишет статус через compare-and-swap.
// При ErrStaleState состояние перечитывается и решение принимается заново один раз.
func (s *Service) transition(ctx context.Context, op string, id int64, to domain.ReservationStatus, prepare prepareFunc) (*models.TransitionResult, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		reservation, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		now := s.timeProvider.Now()
		update, err := prepare(reservation, now)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				s.logger.Warn("%s: %v", op, err)
			}
			return nil, err
		}
		if update == nil {
			return &models.TransitionResult{
				Reservation:    reservation,
				PreviousStatus: reservation.Status,
				Changed:        false,
			}, nil
		}

		update.From = reservation.Status
		update.To = to
		update.UpdatedAt = now

		err = s.reservationRepo.UpdateStatus(ctx, id, *update)
		if errors.Is(err, domain.ErrStaleState) {
			s.logger.Warn("%s: reservation id=%d changed concurrently (attempt %d/%d)", op, id, attempt, maxAttempts)
			continue
		}
		if err != nil {
			s.logger.Error("%s: failed to update reservation id=%d: %v", op, id, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}

		previous := reservation.Status
		applyUpdate(reservation, update)
		if s.metrics != nil {
			s.metrics.ObserveTransition(string(previous), string(to))
		}
		s.logger.Info("%s: reservation id=%d %s -> %s", op, id, previous, to)

		return &models.TransitionResult{
			Reservation:    reservation,
			PreviousStatus: previous,
			Changed:        true,
		}, nil
	}

	return nil, fmt.Errorf("%w: reservation id=%d", domain.ErrConcurrentModification, id)
}

// requireFrom разрешает переход в to только из перечисленных статусов
// и только если ребро есть в таблице переходов
func requireFrom(r *domain.Reservation, to domain.ReservationStatus, allowed ...domain.ReservationStatus) error {
	for _, from := range allowed {
		if r.Status == from {
			return domain.CheckTransition(r.ID, r.Status, to)
		}
	}
	return &domain.TransitionError{ReservationID: r.ID, From: r.Status, To: to}
}

func applyUpdate(r *domain.Reservation, u *domain.StatusUpdate) {
	r.Status = u.To
	r.UpdatedAt = u.UpdatedAt
	if u.ConfirmedBy != nil {
		r.ConfirmedBy = u.ConfirmedBy
	}
	if u.CancelledAt != nil {
		r.CancelledAt = u.CancelledAt
	}
	if u.CancelReason != nil {
		r.CancelReason = u.CancelReason
	}
}

func (s *Service) notify(ctx context.Context, event string, r *domain.Reservation) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event, r); err != nil {
		s.logger.Warn("notify: failed to send %s for reservation id=%d: %v", event, r.ID, err)
	}
}

package auto_confirm

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

const defaultBatchSize = 500

// UseCase один прогон автоподтверждения
type UseCase struct {
	reservationRepo ReservationRepository
	reservations    ReservationService
	metrics         MetricsRecorder
	options         Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	reservations ReservationService,
	metrics MetricsRecorder,
	options Options,
	logger Logger,
) *UseCase {
	if options.Threshold <= 0 {
		options.Threshold = domain.DefaultAutoConfirmAfter
	}
	if options.Workers <= 0 {
		options.Workers = 1
	}
	if options.BatchSize <= 0 {
		options.BatchSize = defaultBatchSize
	}

	return &UseCase{
		reservationRepo: reservationRepo,
		reservations:    reservations,
		metrics:         metrics,
		options:         options,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute подтверждает все PENDING-бронирования старше порога
// Ошибка по отдельному бронированию логируется и не прерывает прогон
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	started := uc.timeProvider.Now()
	cutoff := started.Add(-uc.options.Threshold)

	uc.logger.Info("AutoConfirm: run=%s started, cutoff=%s", runID, cutoff.Format(time.RFC3339))

	var scanned int
	var confirmed, failed atomic.Int64
	var afterID int64

	// Обходим кандидатов страницами по id, пока страница не окажется неполной
	for {
		pending, err := uc.reservationRepo.GetPendingOlderThan(ctx, cutoff, afterID, uc.options.BatchSize)
		if err != nil {
			uc.logger.Error("AutoConfirm: run=%s failed to get pending reservations after id=%d: %v", runID, afterID, err)
			uc.observe(int(confirmed.Load()), started, err)
			return nil, fmt.Errorf("%w: failed to get pending reservations: %v", ErrInternal, err)
		}

		uc.confirmBatch(ctx, runID, pending, &confirmed, &failed)
		scanned += len(pending)

		if len(pending) < uc.options.BatchSize || ctx.Err() != nil {
			break
		}
		afterID = pending[len(pending)-1].ID
	}

	result := &Result{
		RunID:     runID,
		Scanned:   scanned,
		Confirmed: int(confirmed.Load()),
		Failed:    int(failed.Load()),
		Elapsed:   uc.timeProvider.Now().Sub(started),
	}

	uc.observe(result.Confirmed, started, nil)
	uc.logger.Info("AutoConfirm: run=%s finished, scanned=%d, confirmed=%d, failed=%d",
		runID, result.Scanned, result.Confirmed, result.Failed)

	return result, nil
}

// confirmBatch подтверждает страницу параллельно с ограничением числа обработчиков
func (uc *UseCase) confirmBatch(ctx context.Context, runID string, pending []*domain.Reservation, confirmed, failed *atomic.Int64) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.options.Workers)

	for _, r := range pending {
		id := r.ID
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			result, err := uc.reservations.AutoConfirmIfExpired(gctx, id, uc.options.Threshold)
			if err != nil {
				failed.Add(1)
				uc.logger.Warn("AutoConfirm: run=%s reservation id=%d skipped: %v", runID, id, err)
				return nil
			}
			if result.Changed {
				confirmed.Add(1)
			}
			return nil
		})
	}
	// обработчики не возвращают ошибок
	_ = g.Wait()
}

func (uc *UseCase) observe(confirmed int, started time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveSweep(confirmed, uc.timeProvider.Now().Sub(started), err)
}

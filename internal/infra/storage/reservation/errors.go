package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation   = "23P01"
	pqSerializationFailure = "40001"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservation.repository: reservation %w", domain.ErrNotFound)

	// ErrOverlap возвращается, когда вставка нарушает ограничение на пересечение интервалов
	ErrOverlap = fmt.Errorf("reservation.repository: %w", domain.ErrSchedulingConflict)

	// ErrStatusChanged возвращается, когда статус изменился между чтением и записью
	ErrStatusChanged = fmt.Errorf("reservation.repository: %w", domain.ErrStaleState)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

// IsConflict сообщает, что ошибка PostgreSQL означает пересечение бронирований:
// нарушение exclusion-ограничения или сбой сериализации конкурирующих транзакций
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqExclusionViolation || pqErr.Code == pqSerializationFailure
}

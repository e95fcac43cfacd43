package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("catalog.repository: room %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrInvalidPolicy возвращается, если сохранённая политика отмены некорректна
	ErrInvalidPolicy = errors.New("catalog.repository: invalid cancellation policy")
)

package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("create_reservation: room %w", domain.ErrNotFound)

	// ErrRoomInactive возвращается, когда комната снята с бронирования
	ErrRoomInactive = errors.New("create_reservation: room is not active")

	// ErrStartInPast возвращается, когда начало бронирования уже прошло
	ErrStartInPast = errors.New("create_reservation: start is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

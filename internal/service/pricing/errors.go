package pricing

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("pricing: room not found")

	// ErrInvalidInterval возвращается, если начало не раньше конца
	ErrInvalidInterval = errors.New("pricing: invalid interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)

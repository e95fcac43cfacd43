package stats

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде или владельце
	ErrInvalidInput = errors.New("stats: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("stats: internal error")
)

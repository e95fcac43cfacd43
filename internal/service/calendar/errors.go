package calendar

import "errors"

var (
	// ErrInvalidSchedule возвращается, если правила работы комнаты противоречивы
	ErrInvalidSchedule = errors.New("calendar: invalid schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)

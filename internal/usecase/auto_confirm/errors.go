package auto_confirm

import "errors"

var (
	// ErrInternal возвращается, если не удалось получить список бронирований
	ErrInternal = errors.New("auto_confirm: internal error")
)

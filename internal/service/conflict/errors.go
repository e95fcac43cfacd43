package conflict

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("conflict: internal error")
)

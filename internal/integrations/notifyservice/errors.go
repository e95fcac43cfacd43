package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при неуспешном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)

package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

const (
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса бронирования"
	msgConcurrentChange     = "бронирование было изменено параллельно, повторите запрос"
	msgSchedulingConflict   = "выбранное время уже занято"
	msgOutsideOperatingTime = "выбранное время вне часов работы студии"
	msgInvalidInterval      = "некорректный интервал"
)

// RespondDomainError отвечает на доменные ошибки и сообщает, была ли ошибка распознана
func RespondDomainError(w http.ResponseWriter, err error) bool {
	var transitionErr *domain.TransitionError

	switch {
	case errors.As(err, &transitionErr):
		RespondErrorWithDetails(w, http.StatusConflict, msgInvalidTransition, map[string]string{
			"currentStatus":   string(transitionErr.From),
			"requestedStatus": string(transitionErr.To),
		})
	case errors.Is(err, domain.ErrInvalidTransition):
		RespondConflict(w, msgInvalidTransition)
	case errors.Is(err, domain.ErrConcurrentModification), errors.Is(err, domain.ErrStaleState):
		RespondConflict(w, msgConcurrentChange)
	case errors.Is(err, domain.ErrSchedulingConflict):
		RespondConflict(w, msgSchedulingConflict)
	case errors.Is(err, domain.ErrOutsideOperatingHours):
		RespondUnprocessable(w, msgOutsideOperatingTime)
	case errors.Is(err, domain.ErrInvalidInterval):
		RespondBadRequest(w, msgInvalidInterval)
	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, msgNotFound)
	default:
		return false
	}
	return true
}

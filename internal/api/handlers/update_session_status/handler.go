package update_session_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnknownAction        = "неизвестное действие, ожидается start, complete, no-show или abort"
	msgInvalidInput         = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/session - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateSessionStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.TransitionResult
	switch req.Action {
	case ActionStart:
		result, err = h.service.Start(r.Context(), reservationID)
	case ActionComplete:
		result, err = h.service.Complete(r.Context(), reservationID)
	case ActionNoShow:
		result, err = h.service.MarkNoShow(r.Context(), reservationID)
	case ActionAbort:
		result, err = h.service.Abort(r.Context(), reservationID, req.Reason)
	default:
		h.logger.Warn("PATCH /reservations/{id}/session - Unknown action: %q", req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/session - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PATCH /reservations/{id}/session - Rejected %s: reservation_id=%d, error=%v", req.Action, reservationID, err)

		default:
			h.logger.Error("PATCH /reservations/{id}/session - Failed to %s: reservation_id=%d, error=%v", req.Action, reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/session - %s applied: reservation_id=%d, status=%s",
		req.Action, reservationID, result.Reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromTransitionResult(result))
}

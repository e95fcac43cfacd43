package approve_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

const msgInvalidReservationID = "некорректный ID бронирования"

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

// Handle PATCH /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Approve(r.Context(), reservationID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PATCH /reservations/{id}/approve - Rejected: reservation_id=%d, error=%v", reservationID, err)
			return
		}
		h.logger.Error("PATCH /reservations/{id}/approve - Failed to approve: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/approve - Reservation approved: reservation_id=%d, changed=%t",
		reservationID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, models.FromTransitionResult(result))
}

package get_pending_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

const msgInvalidStudioID = "некорректный ID студии"

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

// Handle GET /api/v1/studios/{studioId}/reservations/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studioID, err := handlers.PathInt64(r, "studioId")
	if err != nil {
		h.logger.Warn("GET /studios/{id}/reservations/pending - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	list, err := h.service.ListPendingByStudio(r.Context(), studioID)
	if err != nil {
		h.logger.Error("GET /studios/{id}/reservations/pending - Failed to list: studio_id=%d, error=%v", studioID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /studios/{id}/reservations/pending - Retrieved %d reservations: studio_id=%d", len(list), studioID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservationList(list))
}

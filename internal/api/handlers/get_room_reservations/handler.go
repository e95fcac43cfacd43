package get_room_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidRange  = "некорректный период, ожидается RFC 3339 в параметрах from и to"
	msgInvalidActive = "параметр active должен быть true или false"
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

// Handle GET /api/v1/rooms/{roomId}/reservations?from=&to=&active=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/reservations - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
	}

	list, err := h.service.ListByRoom(r.Context(), &models.ListByRoomRequest{
		RoomID:     roomID,
		From:       from,
		To:         to,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/reservations - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /rooms/{id}/reservations - Failed to list reservations: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/reservations - Retrieved %d reservations: room_id=%d", len(list), roomID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservationList(list))
}

package get_free_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/free-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/free-slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Дата трактуется в часовом поясе студии
	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), h.service.Location())
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/free-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.FreeSlots(r.Context(), roomID, date)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /rooms/{id}/free-slots - Rejected: room_id=%d, error=%v", roomID, err)
			return
		}
		h.logger.Error("GET /rooms/{id}/free-slots - Failed to get free slots: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/{id}/free-slots - Retrieved %d slots: room_id=%d, date=%s",
		len(slots), roomID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromIntervals(roomID, date, slots))
}

package check_availability

import (
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidWindow = "некорректное окно, ожидаются start и end в формате RFC 3339, start раньше end"
)

type Handler struct {
	calendar Calendar
	checker  ConflictChecker
	logger   Logger
}

func NewHandler(calendar Calendar, checker ConflictChecker, logger Logger) *Handler {
	return &Handler{
		calendar: calendar,
		checker:  checker,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability?start=&end=
// Ответ носит справочный характер, окончательная проверка выполняется при создании
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	start, err := handlers.RequiredQueryTime(r, "start")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	end, err := handlers.RequiredQueryTime(r, "end")
	if err != nil || !start.Before(end) {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	open, err := h.calendar.IsOpen(r.Context(), roomID, start, end)
	if err != nil {
		h.logger.Error("GET /rooms/{id}/availability - Failed to check hours: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	conflict, err := h.checker.HasConflict(r.Context(), roomID, start, end, nil)
	if err != nil {
		h.logger.Error("GET /rooms/{id}/availability - Failed to check conflicts: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - room_id=%d, open=%t, conflict=%t", roomID, open, conflict)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		RoomID:    roomID,
		Open:      open,
		Conflict:  conflict,
		Available: open && !conflict,
	})
}

package get_price_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/pricing"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidWindow = "некорректное окно, ожидаются start и end в формате RFC 3339, start раньше end"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/quote?start=&end=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	start, err := handlers.RequiredQueryTime(r, "start")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}
	end, err := handlers.RequiredQueryTime(r, "end")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/quote - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	quote, err := h.service.Quote(r.Context(), roomID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidInterval):
			h.logger.Warn("GET /rooms/{id}/quote - Invalid window: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, pricing.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/quote - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/quote - Failed to price window: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/quote - Quote calculated: room_id=%d, total=%s", roomID, quote.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromQuote(roomID, quote))
}

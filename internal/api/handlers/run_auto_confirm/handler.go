package run_auto_confirm

import (
	"net/http"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
)

type Handler struct {
	useCase AutoConfirmUseCase
	logger  Logger
}

func NewHandler(useCase AutoConfirmUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/auto-confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/auto-confirm - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/auto-confirm - Sweep finished: run=%s, confirmed=%d", result.RunID, result.Confirmed)
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

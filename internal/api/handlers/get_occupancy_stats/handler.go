package get_occupancy_stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/api/handlers"
	"github.com/m04kA/SMC-StudioReservations/internal/service/stats"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgInvalidPeriod  = "некорректный период, ожидаются from и to в формате RFC 3339, from раньше to"
)

type Handler struct {
	service      StatsService
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewHandler location - часовой пояс студий, в нём считается текущий месяц
func NewHandler(service StatsService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:      service,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider устанавливает провайдер времени (для тестирования)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.timeProvider = tp
	return h
}

// Handle GET /api/v1/owners/{ownerId}/occupancy?from=&to=
// Без from и to период - текущий календарный месяц
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /owners/{id}/occupancy - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	from, to, err := h.period(r)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/occupancy - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetOwnerOccupancyStats(r.Context(), ownerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/occupancy - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /owners/{id}/occupancy - Failed to calculate stats: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{id}/occupancy - Stats calculated: owner_id=%d, rate=%s",
		ownerID, result.OccupancyRate.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}

func (h *Handler) period(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	if q.Get("from") == "" && q.Get("to") == "" {
		from, to := stats.MonthPeriod(h.timeProvider.Now(), h.location)
		return from, to, nil
	}

	from, err := handlers.RequiredQueryTime(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := handlers.RequiredQueryTime(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

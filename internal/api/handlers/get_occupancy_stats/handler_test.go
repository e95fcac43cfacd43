package get_occupancy_stats

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/stats"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetOwnerOccupancyStats(ctx context.Context, ownerID int64, from, to time.Time) (*domain.OccupancyStats, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OccupancyStats), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners/100/occupancy?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"ownerId": "100"})
}

func TestHandle(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	svc := new(MockStatsService)
	svc.On("GetOwnerOccupancyStats", mock.Anything, int64(100), from, to).Return(&domain.OccupancyStats{
		OwnerID:          100,
		PeriodStart:      from,
		PeriodEnd:        to,
		ReservedHours:    decimal.RequireFromString("2"),
		AvailableHours:   decimal.RequireFromString("8"),
		OccupancyRate:    decimal.RequireFromString("25"),
		Revenue:          decimal.RequireFromString("200"),
		ReservationCount: 1,
	}, nil)
	svc.On("GetOwnerOccupancyStats", mock.Anything, int64(100), to, from).Return(nil, stats.ErrInvalidInput)

	h := NewHandler(svc, time.UTC, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("from=2025-03-01T00:00:00Z&to=2025-04-01T00:00:00Z"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"occupancyRate":"25.00"`)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("from=2025-04-01T00:00:00Z&to=2025-03-01T00:00:00Z"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_DefaultsToCurrentMonth(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, loc)
	to := time.Date(2025, 12, 1, 0, 0, 0, 0, loc)

	svc := new(MockStatsService)
	svc.On("GetOwnerOccupancyStats", mock.Anything, int64(100),
		mock.MatchedBy(from.Equal), mock.MatchedBy(to.Equal)).
		Return(&domain.OccupancyStats{OwnerID: 100, PeriodStart: from, PeriodEnd: to}, nil)

	h := NewHandler(svc, loc, logger.NewWithWriter(io.Discard, "error")).
		WithTimeProvider(fixedTime{now: time.Date(2025, 11, 20, 15, 0, 0, 0, time.UTC)})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(""))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_OnlyOneBoundIsBadRequest(t *testing.T) {
	svc := new(MockStatsService)
	h := NewHandler(svc, time.UTC, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("from=2025-03-01T00:00:00Z"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetOwnerOccupancyStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package get_price_quote

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

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/pricing"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, roomID int64, start, end time.Time) (*domain.Quote, error) {
	args := m.Called(ctx, roomID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/1/quote?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"roomId": "1"})
}

func TestHandle(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(3*time.Hour + 30*time.Minute)

	svc := new(MockPricingService)
	svc.On("Quote", mock.Anything, int64(1), start, end).Return(&domain.Quote{
		Total:    decimal.RequireFromString("350"),
		Segments: []domain.PriceSegment{{Start: start, End: end, Rate: decimal.RequireFromString("100")}},
	}, nil)
	svc.On("Quote", mock.Anything, int64(1), end, start).Return(nil, pricing.ErrInvalidInterval)

	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("start=2025-03-10T10:00:00Z&end=2025-03-10T13:30:00Z"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"350.00"`)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("start=2025-03-10T13:30:00Z&end=2025-03-10T10:00:00Z"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("start=2025-03-10T10:00:00Z"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_RoomNotFound(t *testing.T) {
	svc := new(MockPricingService)
	svc.On("Quote", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(nil, pricing.ErrRoomNotFound)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWithWriter(io.Discard, "error")).
		Handle(rec, newRequest("start=2025-03-10T10:00:00Z&end=2025-03-10T11:00:00Z"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

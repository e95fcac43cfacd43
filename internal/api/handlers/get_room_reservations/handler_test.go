package get_room_reservations

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ListByRoom(ctx context.Context, req *models.ListByRoomRequest) ([]*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/5/reservations?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"roomId": "5"})
}

func TestHandle_PassesFilter(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	svc := new(MockReservationService)
	svc.On("ListByRoom", mock.Anything, mock.MatchedBy(func(r *models.ListByRoomRequest) bool {
		return r.RoomID == 5 && r.ActiveOnly && r.From.Equal(from) && r.To.Equal(to)
	})).Return([]*domain.Reservation{{ID: 1, RoomID: 5, Status: domain.StatusConfirmed}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWithWriter(io.Discard, "error")).
		Handle(rec, newRequest("from=2025-03-10T00:00:00Z&to=2025-03-11T00:00:00Z&active=true"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reservations":[`)
	svc.AssertExpectations(t)
}

func TestHandle_BadQuery(t *testing.T) {
	svc := new(MockReservationService)
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	for _, q := range []string{"from=yesterday", "active=maybe"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(q))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
	svc.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
}

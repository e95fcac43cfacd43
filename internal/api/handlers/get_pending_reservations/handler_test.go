package get_pending_reservations

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ListPendingByStudio(ctx context.Context, studioID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, studioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/studios/"+id+"/reservations/pending", nil)
	return mux.SetURLVars(req, map[string]string{"studioId": id})
}

func TestHandle(t *testing.T) {
	svc := new(MockReservationService)
	svc.On("ListPendingByStudio", mock.Anything, int64(1)).Return([]*domain.Reservation{
		{ID: 1, StudioID: 1, Status: domain.StatusPending},
		{ID: 2, StudioID: 1, Status: domain.StatusPending},
	}, nil)
	svc.On("ListPendingByStudio", mock.Anything, int64(2)).Return(nil, errors.New("db down"))

	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("2"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package update_session_status

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/internal/service/reservations/models"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) result(args mock.Arguments) (*models.TransitionResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransitionResult), args.Error(1)
}

func (m *MockReservationService) Start(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) Complete(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) MarkNoShow(ctx context.Context, id int64) (*models.TransitionResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockReservationService) Abort(ctx context.Context, id int64, reason string) (*models.TransitionResult, error) {
	return m.result(m.Called(ctx, id, reason))
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/2/session", bytes.NewBufferString(body))
	return mux.SetURLVars(req, map[string]string{"reservationId": "2"})
}

func transitioned(status domain.ReservationStatus) *models.TransitionResult {
	return &models.TransitionResult{
		Reservation: &domain.Reservation{ID: 2, Status: status, TotalPrice: decimal.Zero},
		Changed:     true,
	}
}

func TestHandle_Actions(t *testing.T) {
	tests := []struct {
		body   string
		method string
		args   []interface{}
		status domain.ReservationStatus
	}{
		{`{"action":"start"}`, "Start", []interface{}{mock.Anything, int64(2)}, domain.StatusInProgress},
		{`{"action":"complete"}`, "Complete", []interface{}{mock.Anything, int64(2)}, domain.StatusCompleted},
		{`{"action":"no-show"}`, "MarkNoShow", []interface{}{mock.Anything, int64(2)}, domain.StatusNoShow},
		{`{"action":"abort","reason":"power cut"}`, "Abort", []interface{}{mock.Anything, int64(2), "power cut"}, domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			svc := new(MockReservationService)
			svc.On(tt.method, tt.args...).Return(transitioned(tt.status), nil)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewWithWriter(io.Discard, "error")).Handle(rec, newRequest(tt.body))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"`+string(tt.status)+`"`)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_UnknownAction(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(new(MockReservationService), logger.NewWithWriter(io.Discard, "error")).
		Handle(rec, newRequest(`{"action":"pause"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_IllegalEdge(t *testing.T) {
	svc := new(MockReservationService)
	svc.On("Complete", mock.Anything, int64(2)).
		Return(nil, domain.CheckTransition(2, domain.StatusPending, domain.StatusCompleted))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWithWriter(io.Discard, "error")).Handle(rec, newRequest(`{"action":"complete"}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

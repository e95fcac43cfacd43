package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioReservations/internal/api/middleware"
	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	createReservation "github.com/m04kA/SMC-StudioReservations/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

/* ==================== MOCKS ==================== */

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

type MockSlotFinder struct {
	mock.Mock
}

func (m *MockSlotFinder) FreeSlots(ctx context.Context, roomID int64, date time.Time) ([]domain.Interval, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interval), args.Error(1)
}

/* ==================== HELPERS ==================== */

var (
	start = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
)

func newRequest(t *testing.T, body interface{}, userID int64) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(raw))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func validBody() CreateReservationRequest {
	return CreateReservationRequest{
		RoomID: 1,
		Start:  start.Format(time.RFC3339),
		End:    end.Format(time.RFC3339),
	}
}

func newTestHandler(uc CreateReservationUseCase, slots SlotFinder) *Handler {
	return NewHandler(uc, slots, logger.NewWithWriter(io.Discard, "error"))
}

/* ==================== TESTS ==================== */

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createReservation.Request) bool {
		return r.CustomerID == 42 && r.RoomID == 1 && r.Start.Equal(start) && r.End.Equal(end)
	})).Return(&createReservation.Response{
		Reservation: &domain.Reservation{
			ID: 5, RoomID: 1, CustomerID: 42, Start: start, End: end,
			Status: domain.StatusPending, TotalPrice: decimal.RequireFromString("100"),
		},
		Segments: []domain.PriceSegment{{Start: start, End: end, Rate: decimal.RequireFromString("100")}},
	}, nil)

	rec := httptest.NewRecorder()
	newTestHandler(uc, nil).Handle(rec, newRequest(t, validBody(), 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "100.00", resp.TotalPrice)
	require.Len(t, resp.Segments, 1)
}

func TestHandle_ConflictIncludesFreeSlots(t *testing.T) {
	uc := new(MockUseCase)
	slots := new(MockSlotFinder)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, domain.ErrSchedulingConflict)
	slots.On("FreeSlots", mock.Anything, int64(1), start).Return([]domain.Interval{
		{Start: end, End: end.Add(2 * time.Hour)},
	}, nil)

	rec := httptest.NewRecorder()
	newTestHandler(uc, slots).Handle(rec, newRequest(t, validBody(), 42))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"freeSlots"`)
	assert.Contains(t, rec.Body.String(), end.Format(time.RFC3339))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"room not found", createReservation.ErrRoomNotFound, http.StatusNotFound},
		{"room inactive", createReservation.ErrRoomInactive, http.StatusUnprocessableEntity},
		{"start in past", createReservation.ErrStartInPast, http.StatusUnprocessableEntity},
		{"outside hours", domain.ErrOutsideOperatingHours, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			newTestHandler(uc, nil).Handle(rec, newRequest(t, validBody(), 42))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := new(MockUseCase)
	h := newTestHandler(uc, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString("{")).
		WithContext(middleware.WithUserID(context.Background(), 42)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := validBody()
	body.Start = "10:00"
	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest(t, body, 42))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest(t, validBody(), 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

package run_auto_confirm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioReservations/internal/usecase/auto_confirm"
	"github.com/m04kA/SMC-StudioReservations/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context) (*auto_confirm.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auto_confirm.Result), args.Error(1)
}

func TestHandle(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything).Return(&auto_confirm.Result{RunID: "r1", Scanned: 3, Confirmed: 2}, nil).Once()
	uc.On("Execute", mock.Anything).Return(nil, errors.New("db down")).Once()

	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/internal/auto-confirm", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirmedCount":2`)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/internal/auto-confirm", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

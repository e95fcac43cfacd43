package run_auto_confirm

import (
	"context"

	"github.com/m04kA/SMC-StudioReservations/internal/usecase/auto_confirm"
)

type AutoConfirmUseCase interface {
	Execute(ctx context.Context) (*auto_confirm.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package check_availability

import (
	"context"
	"time"
)

type Calendar interface {
	IsOpen(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

type ConflictChecker interface {
	HasConflict(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package admin_sweep

import "context"

type BookingService interface {
	Sweep(ctx context.Context) (activated int64, completed int64, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

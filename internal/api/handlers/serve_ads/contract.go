package serve_ads

import (
	"context"

	"github.com/meonjeo/ad-booking-service/internal/service/serving"
)

type ServingProvider interface {
	Serve(ctx context.Context, req *serving.ServeRequest) (*serving.ServedAd, error)
	ServeFilled(ctx context.Context, req *serving.ServeFilledRequest) (*serving.ServeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

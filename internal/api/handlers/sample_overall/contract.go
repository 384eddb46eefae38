package sample_overall

import (
	"context"

	"github.com/meonjeo/ad-booking-service/internal/service/serving"
)

type ServingProvider interface {
	SampleOverall(ctx context.Context, perCategory int) (*serving.OverallSample, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

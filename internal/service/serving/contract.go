package serving

import (
	"context"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindServableFor(ctx context.Context, slotType domain.SlotType, category *string, day time.Time) ([]*domain.Booking, error)
}

// HouseAdProvider интерфейс ротации собственных (заполняющих) баннеров
type HouseAdProvider interface {
	HouseFor(t domain.SlotType) string
	HouseForCategory(category string) string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Provider выдача рекламы на витрину. Реализуется сервисом
// и кеширующим декоратором поверх него.
type Provider interface {
	Serve(ctx context.Context, req *ServeRequest) (*ServedAd, error)
	ServeFilled(ctx context.Context, req *ServeFilledRequest) (*ServeResponse, error)
	SampleOverall(ctx context.Context, perCategory int) (*OverallSample, error)
}

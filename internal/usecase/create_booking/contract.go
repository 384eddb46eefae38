package create_booking

import (
	"context"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, slot domain.SlotID, start, end time.Time, excludeID int64) ([]*domain.Booking, error)
}

// ProductServiceClient интерфейс клиента для ProductService
type ProductServiceClient interface {
	GetProduct(ctx context.Context, productID int64) (*productservice.Product, error)
}

// Pricer интерфейс расчета стоимости размещения
type Pricer interface {
	Price(slotType domain.SlotType, position int, durationDays int) int64
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// PriceFunc адаптер функции расчета цены под интерфейс Pricer
type PriceFunc func(slotType domain.SlotType, position int, durationDays int) int64

// Price вызывает функцию расчета
func (f PriceFunc) Price(slotType domain.SlotType, position int, durationDays int) int64 {
	return f(slotType, position, durationDays)
}

package bookings

import (
	"context"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, slot domain.SlotID, start, end time.Time, excludeID int64) ([]*domain.Booking, error)
	GetBySellerWithFilter(ctx context.Context, filter domain.SellerBookingsFilter) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.AdminBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateContent(ctx context.Context, id int64, productID *int64, bannerImageURL *string, clearBanner bool) error
	UpdateDates(ctx context.Context, id int64, start, end time.Time) error
	ActivateDue(ctx context.Context, today time.Time) (int64, error)
	CompleteDue(ctx context.Context, today time.Time) (int64, error)
}

// ProductServiceClient интерфейс клиента для ProductService
type ProductServiceClient interface {
	GetProduct(ctx context.Context, productID int64) (*productservice.Product, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

// Policy поведенческие флаги жизненного цикла.
// AllowAdminCancelActive - может ли администратор снять уже идущую рекламу
// (исключительный сценарий принудительного тейкдауна).
type Policy struct {
	AllowAdminCancelActive bool
}

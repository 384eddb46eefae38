package admin_cancel_booking

import (
	"context"

	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	AdminCancel(ctx context.Context, bookingID int64, req *models.AdminCancelRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package cancel_booking

import (
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(sellerID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		SellerID:           sellerID,
		CancellationReason: r.CancellationReason,
	}
}

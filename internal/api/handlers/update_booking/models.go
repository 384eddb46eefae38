package update_booking

import (
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model.
// Все поля опциональны, передаются только изменяемые.
type UpdateBookingRequest struct {
	ProductID      *int64  `json:"productId,omitempty"`
	BannerImageURL *string `json:"bannerImageUrl,omitempty"`
	ClearBanner    bool    `json:"clearBanner,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(sellerID int64) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
		SellerID:       sellerID,
		ProductID:      r.ProductID,
		BannerImageURL: r.BannerImageURL,
		ClearBanner:    r.ClearBanner,
	}
}

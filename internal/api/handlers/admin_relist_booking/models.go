package admin_relist_booking

import (
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

// RelistBookingRequest HTTP request model
type RelistBookingRequest struct {
	NewStartDate string `json:"newStartDate"` // "2025-09-08"
	NewEndDate   string `json:"newEndDate"`   // "2025-09-14"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RelistBookingRequest) ToServiceRequest() (*models.RelistRequest, error) {
	start, err := time.Parse(domain.DateFormat, r.NewStartDate)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, r.NewEndDate)
	if err != nil {
		return nil, err
	}

	return &models.RelistRequest{
		NewStartDate: start,
		NewEndDate:   end,
	}, nil
}

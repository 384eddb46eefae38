package create_booking

import (
	"fmt"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SellerID <= 0 {
		return fmt.Errorf("%w: sellerID must be positive", ErrInvalidInput)
	}

	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.Title != nil && len(*req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}

	return nil
}

// validateSlot проверяет идентичность слота по каталогу
func validateSlot(req *Request) (domain.SlotID, error) {
	slot := domain.SlotID{
		Type:     req.SlotType,
		Position: req.Position,
		Category: req.Category,
	}
	if err := slot.Validate(); err != nil {
		return domain.SlotID{}, fmt.Errorf("%w: %v", ErrInvalidSlotKind, err)
	}

	// Баннер принимается только для главных баннерных слотов
	if req.BannerImageURL != nil && !domain.UsesBanner(slot.Type) {
		return domain.SlotID{}, fmt.Errorf("%w: %s does not take a banner image", ErrInvalidSlotKind, slot.Type)
	}

	return slot, nil
}

// validateDates проверяет порядок дат и что старт не в прошлом
// дальше допустимого окна graceDays
func validateDates(start, end time.Time, now time.Time, graceDays int) error {
	startDay := domain.DateOnly(start)
	endDay := domain.DateOnly(end)

	if endDay.Before(startDay) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidDate)
	}

	earliest := domain.DateOnly(now).AddDate(0, 0, -graceDays)
	if startDay.Before(earliest) {
		return fmt.Errorf("%w: startDate is in the past", ErrInvalidDate)
	}

	return nil
}

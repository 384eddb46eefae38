package get_availability

import (
	"context"
	"fmt"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

// UseCase use case расчета доступности слотов на период
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute возвращает по-дневную доступность каждой позиции типа слота
// на период [From, To] плюс список полностью занятых дней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: slot=%s, category=%q, range=%s..%s",
		req.SlotType, req.Category,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)

	bookings, err := uc.bookingRepo.FindBlockingForRange(ctx, req.SlotType, req.Category, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	positions, disabled := buildAvailability(req.SlotType, bookings, from, to)

	uc.logger.Info("GetAvailability: slot=%s, %d position(s), %d fully booked day(s)",
		req.SlotType, len(positions), len(disabled))

	return &Response{
		SlotType:      req.SlotType,
		Category:      req.Category,
		From:          from,
		To:            to,
		Positions:     positions,
		DisabledDates: disabled,
	}, nil
}

func validateRequest(req *Request) error {
	if _, err := domain.ParseSlotType(string(req.SlotType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlotKind, err)
	}
	if domain.RequiresCategory(req.SlotType) && req.Category == "" {
		return fmt.Errorf("%w: %s requires a category", ErrInvalidSlotKind, req.SlotType)
	}
	if !domain.RequiresCategory(req.SlotType) && req.Category != "" {
		return fmt.Errorf("%w: %s does not take a category", ErrInvalidSlotKind, req.SlotType)
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)
	if req.From.IsZero() || req.To.IsZero() || to.Before(from) {
		return ErrInvalidRange
	}
	if int(to.Sub(from).Hours()/24)+1 > maxRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, maxRangeDays)
	}

	return nil
}

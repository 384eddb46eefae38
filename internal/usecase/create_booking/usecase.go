package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	bookingRepo "github.com/meonjeo/ad-booking-service/internal/infra/storage/booking"
	productClient "github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
)

// UseCase use case для создания бронирования рекламного слота
type UseCase struct {
	bookingRepo   BookingRepository
	productClient ProductServiceClient
	pricer        Pricer
	txManager     TransactionManager
	timeProvider  TimeProvider
	graceDays     int
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	productClient ProductServiceClient,
	pricer Pricer,
	txManager TransactionManager,
	graceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		productClient: productClient,
		pricer:        pricer,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		graceDays:     graceDays,
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет создание бронирования.
// Проверка пересечений и вставка выполняются в одной SERIALIZABLE транзакции:
// два конкурирующих запроса на один слот с пересекающимися датами
// не могут пройти оба. Либо бронирование создано целиком (RESERVED_UNPAID,
// диапазон занят), либо ничего не записано.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: seller=%d, product=%d, slot=%s#%d, range=%s..%s",
		req.SellerID, req.ProductID, req.SlotType, req.Position,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Идентичность слота по каталогу
	slot, err := validateSlot(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 3. Валидация дат
	now := uc.timeProvider.Now()
	if err := validateDates(req.StartDate, req.EndDate, now, uc.graceDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем владение товаром
	product, err := uc.productClient.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, productClient.ErrProductNotFound) {
			uc.logger.Warn("CreateBooking: product id=%d not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		uc.logger.Error("CreateBooking: failed to get product id=%d: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
	}
	if !product.OwnedBy(req.SellerID) {
		uc.logger.Warn("CreateBooking: product id=%d does not belong to seller id=%d",
			req.ProductID, req.SellerID)
		return nil, ErrNotOwner
	}

	var result *domain.Booking

	// 5. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем пересекающиеся бронирования с блокировкой (FOR UPDATE)
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, slot, req.StartDate, req.EndDate, 0)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot %s busy, %d overlapping booking(s)",
				slot, len(overlapping))
			return ErrSlotUnavailable
		}

		// 5.2. Считаем цену по каталожным ставкам
		days := int(domain.DateOnly(req.EndDate).Sub(domain.DateOnly(req.StartDate)).Hours()/24) + 1
		price := uc.pricer.Price(slot.Type, slot.Position, days)

		// 5.3. Создаем бронирование в статусе RESERVED_UNPAID
		booking := &domain.Booking{
			Slot:           slot,
			SellerID:       req.SellerID,
			ProductID:      req.ProductID,
			StartDate:      domain.DateOnly(req.StartDate),
			EndDate:        domain.DateOnly(req.EndDate),
			Price:          price,
			Status:         domain.StatusReservedUnpaid,
			BannerImageURL: req.BannerImageURL,
			Title:          req.Title,
			Description:    req.Description,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Гонку, проскочившую мимо FOR UPDATE, ловит exclusion constraint БД
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s lost to a concurrent booking", slot)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%d", result.ID, result.Price)

	return &Response{
		ID:             result.ID,
		SellerID:       result.SellerID,
		ProductID:      result.ProductID,
		SlotType:       result.Slot.Type,
		Position:       result.Slot.Position,
		Category:       result.Slot.Category,
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
		Price:          result.Price,
		Status:         string(result.Status),
		BannerImageURL: result.BannerImageURL,
		Title:          result.Title,
		Description:    result.Description,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

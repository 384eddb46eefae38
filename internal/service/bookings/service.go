package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/meonjeo/ad-booking-service/internal/domain"
	bookingRepo "github.com/meonjeo/ad-booking-service/internal/infra/storage/booking"
	productClient "github.com/meonjeo/ad-booking-service/internal/integrations/productservice"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований рекламных слотов
type Service struct {
	bookingRepo   BookingRepository
	productClient ProductServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	policy        Policy
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	productClient ProductServiceClient,
	txManager TransactionManager,
	policy Policy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		productClient: productClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		policy:        policy,
		logger:        logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ConfirmPayment обрабатывает уведомление об оплате от платёжного шлюза.
// Повторное уведомление по уже оплаченному бронированию не является ошибкой.
// Если оплаченный период уже начался, бронирование сразу переводится в ACTIVE.
func (s *Service) ConfirmPayment(ctx context.Context, req *models.ConfirmPaymentRequest) error {
	s.logger.Info("ConfirmPayment: booking id=%d, amount=%d", req.BookingID, req.Amount)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
		}

		// 2. Повторное уведомление - ничего не делаем
		if booking.Status == domain.StatusReservedPaid || booking.Status == domain.StatusActive {
			s.logger.Info("ConfirmPayment: booking id=%d already paid, status=%s", booking.ID, booking.Status)
			return nil
		}

		// 3. Оплатить можно только неоплаченную бронь
		if booking.Status != domain.StatusReservedUnpaid {
			s.logger.Warn("ConfirmPayment: booking id=%d has status=%s, payment rejected",
				booking.ID, booking.Status)
			return ErrInvalidTransition
		}

		// 4. Сумма оплаты должна совпадать с зафиксированной ценой
		if req.Amount != booking.Price {
			s.logger.Warn("ConfirmPayment: booking id=%d amount mismatch: paid=%d, price=%d",
				booking.ID, req.Amount, booking.Price)
			return ErrAmountMismatch
		}

		// 5. Переводим в оплаченный статус
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusReservedPaid); err != nil {
			return fmt.Errorf("%w: ConfirmPayment - failed to update status: %v", ErrInternal, err)
		}

		// 6. Если период уже идёт, активируем сразу, не дожидаясь свипа
		today := domain.DateOnly(s.timeProvider.Now())
		if booking.CoversDay(today) {
			if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusActive); err != nil {
				return fmt.Errorf("%w: ConfirmPayment - failed to activate: %v", ErrInternal, err)
			}
			s.logger.Info("ConfirmPayment: booking id=%d paid and activated", booking.ID)
			return nil
		}

		s.logger.Info("ConfirmPayment: booking id=%d paid", booking.ID)
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("ConfirmPayment: transaction failed for booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: ConfirmPayment - transaction failed: %v", ErrInternal, err)
	}

	return nil
}

// Cancel отменяет бронирование по инициативе селлера.
// Селлер может отменить только своё бронирование и только до начала показа.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by seller=%d", bookingID, req.SellerID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if booking.SellerID != req.SellerID {
			s.logger.Warn("Cancel: access denied for seller=%d to booking id=%d", req.SellerID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelledBySeller() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		}

		reason := req.CancellationReason
		if reason == "" {
			reason = "cancelled by seller"
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
			return fmt.Errorf("%w: Cancel - failed to cancel: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("Cancel: transaction failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction failed: %v", ErrInternal, err)
	}

	return nil
}

// AdminCancel отменяет бронирование по инициативе администратора.
// Завершённые и уже отменённые бронирования трогать нельзя,
// снятие идущей рекламы регулируется политикой.
func (s *Service) AdminCancel(ctx context.Context, bookingID int64, req *models.AdminCancelRequest) error {
	s.logger.Info("AdminCancel: cancelling booking id=%d", bookingID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("AdminCancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: AdminCancel - repository error: %v", ErrInternal, err)
		}

		switch booking.Status {
		case domain.StatusCompleted, domain.StatusCancelled:
			s.logger.Warn("AdminCancel: booking id=%d has terminal status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		case domain.StatusActive:
			if !s.policy.AllowAdminCancelActive {
				s.logger.Warn("AdminCancel: cancelling active booking id=%d is disabled by policy", bookingID)
				return ErrInvalidTransition
			}
		}

		note := req.Note
		if note == "" {
			note = "cancelled by admin"
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, note); err != nil {
			return fmt.Errorf("%w: AdminCancel - failed to cancel: %v", ErrInternal, err)
		}

		s.logger.Info("AdminCancel: successfully cancelled booking id=%d", bookingID)
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("AdminCancel: transaction failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AdminCancel - transaction failed: %v", ErrInternal, err)
	}

	return nil
}

// Update изменяет товар и баннер неоплаченного бронирования.
// После оплаты бронирование замораживается.
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by seller=%d", bookingID, req.SellerID)

	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Update: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if booking.SellerID != req.SellerID {
			s.logger.Warn("Update: access denied for seller=%d to booking id=%d", req.SellerID, bookingID)
			return ErrAccessDenied
		}

		if !booking.Editable() {
			s.logger.Warn("Update: booking id=%d is frozen, status=%s", bookingID, booking.Status)
			return ErrNotEditable
		}

		// Новый товар обязан принадлежать тому же селлеру
		if req.ProductID != nil {
			product, err := s.productClient.GetProduct(ctx, *req.ProductID)
			if err != nil {
				if errors.Is(err, productClient.ErrProductNotFound) {
					s.logger.Warn("Update: product id=%d not found", *req.ProductID)
					return ErrProductNotFound
				}
				return fmt.Errorf("%w: Update - failed to get product: %v", ErrInternal, err)
			}
			if !product.OwnedBy(req.SellerID) {
				s.logger.Warn("Update: product id=%d does not belong to seller=%d", *req.ProductID, req.SellerID)
				return ErrNotOwner
			}
		}

		// Баннер есть только у главных слотов
		if req.BannerImageURL != nil && !domain.UsesBanner(booking.Slot.Type) {
			s.logger.Warn("Update: slot type=%s does not take a banner", booking.Slot.Type)
			return fmt.Errorf("%w: slot type %s does not take a banner", ErrInvalidInput, booking.Slot.Type)
		}

		clearBanner := req.ClearBanner && req.BannerImageURL == nil
		if err := s.bookingRepo.UpdateContent(ctx, bookingID, req.ProductID, req.BannerImageURL, clearBanner); err != nil {
			return fmt.Errorf("%w: Update - failed to update content: %v", ErrInternal, err)
		}

		updated, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("%w: Update - failed to reload booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("Update: transaction failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated, domain.DateOnly(s.timeProvider.Now())), nil
}

// Relist переносит бронирование на новые даты (только администратор).
// Новый диапазон проходит ту же проверку пересечений, что и создание.
func (s *Service) Relist(ctx context.Context, bookingID int64, req *models.RelistRequest) error {
	s.logger.Info("Relist: moving booking id=%d to %s..%s", bookingID,
		req.NewStartDate.Format(domain.DateFormat), req.NewEndDate.Format(domain.DateFormat))

	start := domain.DateOnly(req.NewStartDate)
	end := domain.DateOnly(req.NewEndDate)
	if req.NewStartDate.IsZero() || req.NewEndDate.IsZero() || end.Before(start) {
		return fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Relist: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Relist - repository error: %v", ErrInternal, err)
		}

		if booking.Status == domain.StatusCompleted || booking.Status == domain.StatusCancelled {
			s.logger.Warn("Relist: booking id=%d has terminal status=%s", bookingID, booking.Status)
			return ErrInvalidTransition
		}

		overlapping, err := s.bookingRepo.FindOverlapping(ctx, booking.Slot, start, end, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: Relist - failed to check overlaps: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			s.logger.Warn("Relist: slot %s is taken for %s..%s", booking.Slot,
				start.Format(domain.DateFormat), end.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		if err := s.bookingRepo.UpdateDates(ctx, bookingID, start, end); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: Relist - failed to update dates: %v", ErrInternal, err)
		}

		s.logger.Info("Relist: successfully moved booking id=%d", bookingID)
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("Relist: transaction failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Relist - transaction failed: %v", ErrInternal, err)
	}

	return nil
}

// GetByID получает бронирование по ID.
// Селлер видит только свои бронирования, администратор - любые.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.SellerID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, domain.DateOnly(s.timeProvider.Now())), nil
}

// GetSellerBookings получает историю бронирований селлера.
// Опционально фильтрует по статусу и периоду.
func (s *Service) GetSellerBookings(ctx context.Context, req *models.GetSellerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSellerBookings: fetching bookings for seller=%d", req.SellerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSellerBookings: invalid filter for seller=%d: %v", req.SellerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySellerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSellerBookings: repository error for seller=%d: %v", req.SellerID, err)
		return nil, fmt.Errorf("%w: GetSellerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSellerBookings: successfully fetched %d bookings for seller=%d", len(bookings), req.SellerID)
	return models.FromDomainBookingList(bookings, domain.DateOnly(s.timeProvider.Now())), nil
}

// AdminList получает бронирования по произвольному фильтру с пагинацией
func (s *Service) AdminList(ctx context.Context, req *models.AdminListRequest) (*models.BookingListResponse, error) {
	s.logger.Info("AdminList: fetching bookings, limit=%d, offset=%d", req.Limit, req.Offset)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("AdminList: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		bookings, err = s.bookingRepo.GetWithFilter(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminList - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AdminList: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, domain.DateOnly(s.timeProvider.Now())), nil
}

// Sweep переводит просроченные статусы к текущей дате:
// оплаченные бронирования с начавшимся периодом становятся ACTIVE,
// активные с закончившимся периодом - COMPLETED.
// Операция идемпотентна, её можно запускать сколько угодно раз.
func (s *Service) Sweep(ctx context.Context) (activated int64, completed int64, err error) {
	today := domain.DateOnly(s.timeProvider.Now())

	activated, err = s.bookingRepo.ActivateDue(ctx, today)
	if err != nil {
		s.logger.Error("Sweep: failed to activate due bookings: %v", err)
		return 0, 0, fmt.Errorf("%w: Sweep - failed to activate: %v", ErrInternal, err)
	}

	completed, err = s.bookingRepo.CompleteDue(ctx, today)
	if err != nil {
		s.logger.Error("Sweep: failed to complete due bookings: %v", err)
		return activated, 0, fmt.Errorf("%w: Sweep - failed to complete: %v", ErrInternal, err)
	}

	if activated > 0 || completed > 0 {
		s.logger.Info("Sweep: activated=%d, completed=%d for %s",
			activated, completed, today.Format(domain.DateFormat))
	}
	return activated, completed, nil
}

// isServiceError отличает доменные ошибки сервиса от инфраструктурных,
// чтобы не заворачивать их в ErrInternal повторно
func isServiceError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound,
		ErrAccessDenied,
		ErrAmountMismatch,
		ErrInvalidTransition,
		ErrNotEditable,
		ErrProductNotFound,
		ErrNotOwner,
		ErrSlotUnavailable,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/api/middleware"
	createBooking "github.com/meonjeo/ad-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotUnavailable    = "выбранный слот занят на указанные даты"
	msgInvalidSlot        = "некорректный тип слота, позиция или категория"
	msgInvalidBookingDate = "некорректный период размещения"
	msgProductNotFound    = "товар не найден"
	msgNotOwner           = "товар не принадлежит селлеру"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/ads/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /ads/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ads/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sellerID)
	if err != nil {
		h.logger.Warn("POST /ads/bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /ads/bookings - Slot unavailable: seller_id=%d, slot=%s#%d",
				sellerID, req.SlotType, req.Position)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidSlotKind):
			h.logger.Warn("POST /ads/bookings - Invalid slot: seller_id=%d, slot=%s#%d",
				sellerID, req.SlotType, req.Position)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /ads/bookings - Invalid date range: seller_id=%d, range=%s..%s",
				sellerID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrProductNotFound):
			h.logger.Warn("POST /ads/bookings - Product not found: product_id=%d", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, createBooking.ErrNotOwner):
			h.logger.Warn("POST /ads/bookings - Product not owned: seller_id=%d, product_id=%d",
				sellerID, req.ProductID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /ads/bookings - Invalid input: seller_id=%d, error=%v", sellerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /ads/bookings - Failed to create booking: seller_id=%d, error=%v",
				sellerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /ads/bookings - Booking created: booking_id=%d, seller_id=%d, slot=%s#%d, price=%d",
		result.ID, sellerID, result.SlotType, result.Position, result.Price)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/api/middleware"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotEditable        = "бронирование заморожено после оплаты"
	msgProductNotFound    = "товар не найден"
	msgNotOwner           = "товар не принадлежит селлеру"
	msgInvalidInput       = "некорректные данные изменения"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/ads/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /ads/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	sellerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /ads/bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /ads/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Update(r.Context(), bookingID, req.ToServiceRequest(sellerID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /ads/bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /ads/bookings/{id} - Access denied: booking_id=%d, seller_id=%d",
				bookingID, sellerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNotEditable):
			h.logger.Warn("PATCH /ads/bookings/{id} - Booking frozen: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, bookings.ErrProductNotFound):
			h.logger.Warn("PATCH /ads/bookings/{id} - Product not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, bookings.ErrNotOwner):
			h.logger.Warn("PATCH /ads/bookings/{id} - Product not owned: booking_id=%d, seller_id=%d",
				bookingID, sellerID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /ads/bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /ads/bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /ads/bookings/{id} - Booking updated: booking_id=%d, seller_id=%d", bookingID, sellerID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

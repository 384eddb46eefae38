package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgAmountMismatch     = "сумма оплаты не совпадает со стоимостью бронирования"
	msgInvalidTransition  = "бронирование нельзя оплатить в текущем статусе"
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

// Handle POST /api/v1/ads/payments/confirm
// Вызывается платёжным шлюзом после успешного списания.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ads/payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ConfirmPayment(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /ads/payments/confirm - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAmountMismatch):
			h.logger.Warn("POST /ads/payments/confirm - Amount mismatch: booking_id=%d, amount=%d",
				req.BookingID, req.Amount)
			handlers.RespondError(w, http.StatusConflict, msgAmountMismatch)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /ads/payments/confirm - Invalid transition: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /ads/payments/confirm - Failed to confirm payment: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /ads/payments/confirm - Payment confirmed: booking_id=%d, amount=%d",
		req.BookingID, req.Amount)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

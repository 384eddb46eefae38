package admin_relist_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound           = "бронирование не найдено"
	msgSlotUnavailable    = "слот занят на новые даты"
	msgInvalidTransition  = "бронирование нельзя перенести в текущем статусе"
	msgInvalidInput       = "некорректный период переноса"
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

// Handle PATCH /api/v1/ads/admin/bookings/{bookingId}/relist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RelistBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Relist(r.Context(), bookingID, serviceReq); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrSlotUnavailable):
			h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Slot unavailable: booking_id=%d, range=%s..%s",
				bookingID, req.NewStartDate, req.NewEndDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /ads/admin/bookings/{id}/relist - Invalid input: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /ads/admin/bookings/{id}/relist - Failed to relist: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /ads/admin/bookings/{id}/relist - Booking relisted: booking_id=%d, range=%s..%s",
		bookingID, req.NewStartDate, req.NewEndDate)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "relisted"})
}

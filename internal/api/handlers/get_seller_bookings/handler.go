package get_seller_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/api/middleware"
	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidFilter = "некорректные параметры фильтра"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/ads/sellers/me/bookings?status=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /ads/sellers/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetSellerBookingsRequest{SellerID: sellerID}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /ads/sellers/me/bookings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &from
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /ads/sellers/me/bookings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.To = &to
	}

	result, err := h.service.GetSellerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /ads/sellers/me/bookings - Invalid filter: seller_id=%d, error=%v",
				sellerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /ads/sellers/me/bookings - Failed to get bookings: seller_id=%d, error=%v",
				sellerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /ads/sellers/me/bookings - Retrieved %d bookings: seller_id=%d",
		len(result.Bookings), sellerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

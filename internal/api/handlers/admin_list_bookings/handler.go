package admin_list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings"
	"github.com/meonjeo/ad-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
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

// Handle GET /api/v1/ads/admin/bookings?status=&slotType=&category=&sellerId=&limit=&offset=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.AdminListRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if slotType := query.Get("slotType"); slotType != "" {
		req.SlotType = &slotType
	}
	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if sellerIDStr := query.Get("sellerId"); sellerIDStr != "" {
		sellerID, err := strconv.ParseInt(sellerIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /ads/admin/bookings - Invalid sellerId: %s", sellerIDStr)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.SellerID = &sellerID
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.logger.Warn("GET /ads/admin/bookings - Invalid limit: %s", limitStr)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			h.logger.Warn("GET /ads/admin/bookings - Invalid offset: %s", offsetStr)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.Offset = offset
	}

	result, err := h.service.AdminList(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /ads/admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /ads/admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /ads/admin/bookings - Retrieved %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

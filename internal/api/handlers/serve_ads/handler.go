package serve_ads

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/domain"
	"github.com/meonjeo/ad-booking-service/internal/service/serving"
)

const (
	msgInvalidSlot     = "некорректный тип слота, позиция или категория"
	msgInvalidPosition = "некорректная позиция"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	provider ServingProvider
	logger   Logger
}

func NewHandler(provider ServingProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/ads/serve/{slotType}?category=&position=&date=
// Без position возвращает все позиции типа слота с заполнением пустых.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotType := domain.SlotType(vars["slotType"])
	query := r.URL.Query()
	category := query.Get("category")

	var day *time.Time
	if dateStr := query.Get("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /ads/serve - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		day = &parsed
	}

	if positionStr := query.Get("position"); positionStr != "" {
		position, err := strconv.Atoi(positionStr)
		if err != nil {
			h.logger.Warn("GET /ads/serve - Invalid position: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPosition)
			return
		}

		ad, err := h.provider.Serve(r.Context(), &serving.ServeRequest{
			SlotType: slotType,
			Position: position,
			Category: category,
			Day:      day,
		})
		if err != nil {
			h.respondServeError(w, slotType, err)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, ad)
		return
	}

	resp, err := h.provider.ServeFilled(r.Context(), &serving.ServeFilledRequest{
		SlotType: slotType,
		Category: category,
		Day:      day,
	})
	if err != nil {
		h.respondServeError(w, slotType, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondServeError(w http.ResponseWriter, slotType domain.SlotType, err error) {
	switch {
	case errors.Is(err, serving.ErrInvalidSlotKind):
		h.logger.Warn("GET /ads/serve - Invalid slot: slot_type=%s, error=%v", slotType, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)

	default:
		h.logger.Error("GET /ads/serve - Failed to serve ads: slot_type=%s, error=%v", slotType, err)
		handlers.RespondInternalError(w)
	}
}

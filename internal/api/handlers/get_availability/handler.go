package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
	"github.com/meonjeo/ad-booking-service/internal/domain"
	getAvailability "github.com/meonjeo/ad-booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidSlot   = "некорректный тип слота или категория"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange  = "некорректный период запроса"
	msgRangeTooWide  = "слишком широкий период запроса"
	msgMissingParams = "обязательные параметры: slotType, from, to"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/ads/availability?slotType=&category=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	slotType := query.Get("slotType")
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if slotType == "" || fromStr == "" || toStr == "" {
		h.logger.Warn("GET /ads/availability - Missing required params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /ads/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /ads/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailability.Request{
		SlotType: domain.SlotType(slotType),
		Category: query.Get("category"),
		From:     from,
		To:       to,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidSlotKind):
			h.logger.Warn("GET /ads/availability - Invalid slot: slot_type=%s, error=%v", slotType, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, getAvailability.ErrInvalidRange):
			h.logger.Warn("GET /ads/availability - Invalid range: %s..%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrRangeTooWide):
			h.logger.Warn("GET /ads/availability - Range too wide: %s..%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		default:
			h.logger.Error("GET /ads/availability - Failed to get availability: slot_type=%s, error=%v",
				slotType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /ads/availability - Availability computed: slot_type=%s, range=%s..%s",
		slotType, fromStr, toStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

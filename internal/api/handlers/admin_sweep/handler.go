package admin_sweep

import (
	"net/http"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
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

// SweepResponse результат прохода по просроченным статусам
type SweepResponse struct {
	Activated int64 `json:"activated"`
	Completed int64 `json:"completed"`
}

// Handle POST /api/v1/ads/admin/sweep
// Ручной запуск перевода статусов, дублирует фоновый проход.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activated, completed, err := h.service.Sweep(r.Context())
	if err != nil {
		h.logger.Error("POST /ads/admin/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /ads/admin/sweep - Sweep finished: activated=%d, completed=%d", activated, completed)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Activated: activated, Completed: completed})
}

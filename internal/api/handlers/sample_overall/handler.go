package sample_overall

import (
	"net/http"
	"strconv"

	"github.com/meonjeo/ad-booking-service/internal/api/handlers"
)

const msgInvalidPerCategory = "некорректное значение perCategory"

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

// Handle GET /api/v1/ads/serve-sample?perCategory=
// Случайная подборка категорийной рекламы для главной страницы.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	perCategory := 0
	if perCategoryStr := r.URL.Query().Get("perCategory"); perCategoryStr != "" {
		parsed, err := strconv.Atoi(perCategoryStr)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /ads/serve-sample - Invalid perCategory: %s", perCategoryStr)
			handlers.RespondBadRequest(w, msgInvalidPerCategory)
			return
		}
		perCategory = parsed
	}

	sample, err := h.provider.SampleOverall(r.Context(), perCategory)
	if err != nil {
		h.logger.Error("GET /ads/serve-sample - Failed to sample ads: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sample)
}

package list_active_tokens

import (
	"net/http"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
)

type Handler struct {
	service TokenService
	logger  Logger
}

func NewHandler(service TokenService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tokens/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /tokens/active - Failed to list tokens: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tokens/active - Tokens retrieved: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

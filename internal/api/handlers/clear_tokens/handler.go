package clear_tokens

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
)

const msgConfirmationRequired = "add ?confirm=true to remove all tokens"

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

// Handle DELETE /api/v1/tokens?confirm=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	result, err := h.service.ClearAll(r.Context(), confirmed)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrConfirmationRequired):
			h.logger.Warn("DELETE /tokens - Missing confirmation")
			handlers.RespondBadRequest(w, msgConfirmationRequired)

		default:
			h.logger.Error("DELETE /tokens - Failed to clear tokens: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Warn("DELETE /tokens - All tokens removed: removed=%d", result.Removed)
	handlers.RespondNoContent(w)
}

package get_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
)

const (
	msgInvalidToken = "token is required"
	msgNotFound     = "token not found"
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

// Handle GET /api/v1/tokens/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	booking, err := h.service.Get(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, tokens.ErrTokenNotFound):
			h.logger.Warn("GET /tokens/{token} - Token not found: %s", token)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /tokens/{token} - Failed to get token: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

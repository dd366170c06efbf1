package redeem_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens"
)

const msgInvalidToken = "token is required"

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

// Handle POST /api/v1/tokens/{token}/redeem
// Повторное сканирование возвращает тот же 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.service.Redeem(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("POST /tokens/{token}/redeem - Failed to redeem: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tokens/{token}/redeem - Token redeemed: %s", token)
	handlers.RespondNoContent(w)
}

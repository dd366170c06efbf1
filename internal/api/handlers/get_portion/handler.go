package get_portion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/portions"
)

const (
	msgInvalidDate       = "invalid date, expected YYYY-MM-DD"
	msgUnknownPortionKey = "unknown portion key"
)

type Handler struct {
	service PortionService
	logger  Logger
}

func NewHandler(service PortionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/portions/{date}/{portionKey}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, portionKey := vars["date"], vars["portionKey"]

	result, err := h.service.Remaining(r.Context(), date, portionKey)
	if err != nil {
		switch {
		case errors.Is(err, portions.ErrInvalidInput):
			h.logger.Warn("GET /portions - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, portions.ErrUnknownPortionKey):
			h.logger.Warn("GET /portions - Unknown portion key: %s", portionKey)
			handlers.RespondNotFound(w, msgUnknownPortionKey)

		default:
			h.logger.Error("GET /portions - Failed to get remaining: date=%s, key=%s, error=%v", date, portionKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

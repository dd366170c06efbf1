package get_day_menu

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	getDayMenu "github.com/m04kA/SMC-CanteenBooking/internal/usecase/get_day_menu"
)

const msgInvalidDate = "invalid date, expected YYYY-MM-DD"

type Handler struct {
	useCase GetDayMenuUseCase
	logger  Logger
}

func NewHandler(useCase GetDayMenuUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/menu/{date}?block=&floor=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	query := r.URL.Query()

	result, err := h.useCase.Execute(r.Context(), &getDayMenu.Request{
		Date:  date,
		Block: query.Get("block"),
		Floor: query.Get("floor"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getDayMenu.ErrInvalidInput):
			h.logger.Warn("GET /menu/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /menu/{date} - Failed to get menu: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /menu/{date} - Menu retrieved: date=%s, published=%t", date, result.Published)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

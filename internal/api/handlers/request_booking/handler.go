package request_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CanteenBooking/internal/api/handlers"
	requestBooking "github.com/m04kA/SMC-CanteenBooking/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "date (YYYY-MM-DD), section and item are required"
	msgUnknownSection     = "unknown menu section"
	msgItemNotFound       = "item is not on this section's menu"
	msgPriceMismatch      = "price does not match the menu"
	msgBookingFailed      = "booking failed, please try again"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case requestBooking.IsRejection(err):
			h.logger.Info("POST /bookings - Rejected: date=%s, section=%s, item=%s, reason=%v",
				req.Date, req.Section, req.Item, err)
			handlers.RespondJSON(w, http.StatusConflict, &RejectionResponse{
				Code:    http.StatusConflict,
				Message: requestBooking.RejectionMessage(err),
				Reason:  rejectionReason(err),
			})

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requestBooking.ErrUnknownSection):
			h.logger.Warn("POST /bookings - Unknown section: section=%s", req.Section)
			handlers.RespondBadRequest(w, msgUnknownSection)

		case errors.Is(err, requestBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: section=%s, item=%s", req.Section, req.Item)
			handlers.RespondBadRequest(w, msgItemNotFound)

		case errors.Is(err, requestBooking.ErrPriceMismatch):
			h.logger.Warn("POST /bookings - Price mismatch: section=%s, item=%s", req.Section, req.Item)
			handlers.RespondBadRequest(w, msgPriceMismatch)

		case errors.Is(err, requestBooking.ErrBookingFailed):
			h.logger.Error("POST /bookings - Booking failed and was rolled back: date=%s, section=%s, item=%s, error=%v",
				req.Date, req.Section, req.Item, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgBookingFailed)

		default:
			h.logger.Error("POST /bookings - Failed to request booking: date=%s, section=%s, item=%s, error=%v",
				req.Date, req.Section, req.Item, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: token=%s, section=%s, item=%s",
		result.Token, result.SectionName, result.ItemTitle)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, requestBooking.ErrSoldOut):
		return reasonSoldOut
	case errors.Is(err, requestBooking.ErrNoMenuPublished):
		return reasonNoMenu
	default:
		return reasonOutsideWindow
	}
}

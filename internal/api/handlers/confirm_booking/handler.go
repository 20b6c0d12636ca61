package confirm_booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zomesstay/ZS-SearchService/internal/api/handlers"
	"github.com/zomesstay/ZS-SearchService/internal/api/middleware"
	confirmBooking "github.com/zomesstay/ZS-SearchService/internal/usecase/confirm_booking"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidInput      = "некорректные параметры бронирования"
	msgInvalidDateRange  = "дата выезда должна быть позже даты заезда"
	msgCheckInPast       = "дата заезда не может быть в прошлом"
	msgStayTooLong       = "превышена максимальная длительность проживания"
	msgPropertyNotFound  = "объект размещения не найден"
	msgRoomsNotAvailable = "комнаты заняты на выбранные даты"
	msgBookingCreated    = "бронирование подтверждено"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := ToUseCaseRequest(&body, userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, confirmBooking.ErrCheckInPast):
			h.logger.Warn("POST /bookings - Check-in in the past: %v", err)
			handlers.RespondBadRequest(w, msgCheckInPast)

		case errors.Is(err, confirmBooking.ErrStayTooLong):
			h.logger.Warn("POST /bookings - Stay too long: %v", err)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, confirmBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%s", body.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, confirmBooking.ErrRoomsNotAvailable):
			h.logger.Warn("POST /bookings - Rooms not available: property_id=%s", body.PropertyID)
			handlers.RespondConflict(w, msgRoomsNotAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to confirm booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking confirmed: booking_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, ConfirmBookingResponse{
		Success: true,
		Data:    result,
		Message: msgBookingCreated,
	})
}

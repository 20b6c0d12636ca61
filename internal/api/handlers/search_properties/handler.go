package search_properties

import (
	"errors"
	"net/http"

	"github.com/zomesstay/ZS-SearchService/internal/api/handlers"
	searchProperties "github.com/zomesstay/ZS-SearchService/internal/usecase/search_properties"
)

const (
	msgInvalidDateRange = "дата выезда должна быть позже даты заезда"
	msgCheckInPast      = "дата заезда не может быть в прошлом"
	msgStayTooLong      = "превышена максимальная длительность проживания"
	msgNoGuests         = "укажите хотя бы одного гостя"
	msgInvalidInput     = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchPropertiesUseCase
	logger  Logger
}

func NewHandler(useCase SearchPropertiesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/search
// Query params: checkIn, checkOut (required, YYYY-MM-DD),
// adults, children, infants, rooms, infantsUseBed, city (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /properties/search - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchProperties.ErrInvalidDateRange):
			h.logger.Warn("GET /properties/search - Invalid date range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, searchProperties.ErrCheckInPast):
			h.logger.Warn("GET /properties/search - Check-in in the past: %v", err)
			handlers.RespondBadRequest(w, msgCheckInPast)

		case errors.Is(err, searchProperties.ErrStayTooLong):
			h.logger.Warn("GET /properties/search - Stay too long: %v", err)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, searchProperties.ErrNoGuests):
			h.logger.Warn("GET /properties/search - No guests requested: %v", err)
			handlers.RespondBadRequest(w, msgNoGuests)

		case errors.Is(err, searchProperties.ErrInvalidInput):
			h.logger.Warn("GET /properties/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /properties/search - Failed to search properties: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /properties/search - Search completed: results=%d, nights=%d",
		result.Total, result.SearchParams.Nights)
	handlers.RespondJSON(w, http.StatusOK, response)
}

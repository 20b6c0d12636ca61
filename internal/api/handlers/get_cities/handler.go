package get_cities

import (
	"net/http"

	"github.com/zomesstay/ZS-SearchService/internal/api/handlers"
	"github.com/zomesstay/ZS-SearchService/internal/service/properties/models"
)

type Handler struct {
	service PropertiesService
	logger  Logger
}

func NewHandler(service PropertiesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CitiesResponse HTTP response модель списка городов
type CitiesResponse struct {
	Success bool              `json:"success"`
	Data    []models.CityInfo `json:"data"`
	Total   int               `json:"total"`
}

// Handle GET /api/v1/properties/cities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetUniqueCities(r.Context())
	if err != nil {
		h.logger.Error("GET /properties/cities - Failed to get cities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties/cities - Cities retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, CitiesResponse{
		Success: true,
		Data:    result.Cities,
		Total:   result.Total,
	})
}

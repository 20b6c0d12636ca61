package search_properties

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zomesstay/ZS-SearchService/internal/api/middleware"
	"github.com/zomesstay/ZS-SearchService/internal/domain"
	searchProperties "github.com/zomesstay/ZS-SearchService/internal/usecase/search_properties"
)

// SearchResponse HTTP response модель результатов поиска
type SearchResponse struct {
	Success      bool                               `json:"success"`
	Data         []*searchProperties.PropertyResult `json:"data"`
	Message      string                             `json:"message"`
	SearchParams searchProperties.SearchParams      `json:"searchParams"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(r *http.Request) (*searchProperties.Request, error) {
	q := r.URL.Query()

	checkInStr := q.Get("checkIn")
	if checkInStr == "" {
		return nil, fmt.Errorf("checkIn is required")
	}
	checkIn, err := time.Parse(domain.DateFormat, checkInStr)
	if err != nil {
		return nil, fmt.Errorf("invalid checkIn: %v", err)
	}

	checkOutStr := q.Get("checkOut")
	if checkOutStr == "" {
		return nil, fmt.Errorf("checkOut is required")
	}
	checkOut, err := time.Parse(domain.DateFormat, checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid checkOut: %v", err)
	}

	return &searchProperties.Request{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests: domain.GuestNeed{
			Adults:        parseCount(q.Get("adults"), 0),
			Children:      parseCount(q.Get("children"), 0),
			Infants:       parseCount(q.Get("infants"), 0),
			Rooms:         parseCount(q.Get("rooms"), 1),
			InfantsUseBed: parseBool(q.Get("infantsUseBed")),
		},
		City:    q.Get("city"),
		AgentID: middleware.AgentID(r),
	}, nil
}

// parseCount парсит неотрицательное число с дефолтом для пустых и мусорных значений
func parseCount(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchProperties.Response) *SearchResponse {
	message := "нет объектов по заданным критериям, попробуйте другие даты или меньшее число гостей"
	if resp.Total > 0 {
		message = fmt.Sprintf("найдено объектов: %d", resp.Total)
	}

	return &SearchResponse{
		Success:      true,
		Data:         resp.Results,
		Message:      message,
		SearchParams: resp.SearchParams,
	}
}

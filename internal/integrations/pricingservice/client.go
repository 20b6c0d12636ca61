package pricingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PricingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PricingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPriceRanges получает ценовые диапазоны для набора объектов
func (c *Client) GetPriceRanges(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*PriceRange, error) {
	url := fmt.Sprintf("%s/internal/pricing/price-ranges", c.baseURL)

	body, err := json.Marshal(priceRangesRequest{PropertyIDs: propertyIDs})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(payload))
	}

	var parsed priceRangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	ranges := make(map[uuid.UUID]*PriceRange, len(parsed.Ranges))
	for i := range parsed.Ranges {
		pr := parsed.Ranges[i]
		ranges[pr.PropertyID] = &pr
	}

	return ranges, nil
}

// GetPriceRangesWithGracefulDegradation получает ценовые диапазоны с graceful degradation
// При недоступности PricingService возвращает ErrServiceDegraded - поиск продолжает
// работать, отдавая результаты без цен
func (c *Client) GetPriceRangesWithGracefulDegradation(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*PriceRange, error) {
	c.log.Info("Fetching price ranges for %d properties", len(propertyIDs))

	ranges, err := c.GetPriceRanges(ctx, propertyIDs)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("PricingService unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("Successfully fetched %d price ranges", len(ranges))
	return ranges, nil
}

package agentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с AgentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AgentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDiscounts получает активные скидки одобренного агента для набора объектов
// Возвращает ErrAgentNotApproved, если агент не найден или не прошел модерацию
func (c *Client) GetDiscounts(ctx context.Context, agentID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]*Discount, error) {
	ids := make([]string, len(propertyIDs))
	for i, id := range propertyIDs {
		ids[i] = id.String()
	}
	url := fmt.Sprintf("%s/internal/agents/%s/discounts?propertyIds=%s",
		c.baseURL, agentID, strings.Join(ids, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusForbidden:
		return nil, ErrAgentNotApproved
	default:
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(payload))
	}

	var parsed discountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !parsed.Approved {
		return nil, ErrAgentNotApproved
	}

	discounts := make(map[uuid.UUID]*Discount, len(parsed.Discounts))
	for i := range parsed.Discounts {
		d := parsed.Discounts[i]
		discounts[d.PropertyID] = &d
	}

	return discounts, nil
}

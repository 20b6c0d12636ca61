package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	agentIDKey contextKey = "agentID"

	// HeaderUserID заголовок с ID аутентифицированного пользователя
	HeaderUserID = "X-User-ID"
	// HeaderAgentID заголовок с ID агента для агентских тарифов
	HeaderAgentID = "X-Agent-ID"
)

// Auth проверяет наличие корректного X-User-ID заголовка
// Аутентификация выполняется на API gateway, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// AgentID извлекает опциональный X-Agent-ID заголовок запроса
// Возвращает nil, если заголовок отсутствует или некорректен
func AgentID(r *http.Request) *uuid.UUID {
	raw := r.Header.Get(HeaderAgentID)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

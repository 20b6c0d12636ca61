package search_properties

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/agentservice"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/pricingservice"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	// ListActive возвращает все активные комнаты активных объектов
	ListActive(ctx context.Context) ([]*domain.Room, error)
	// ListBlockedInRange возвращает блокирующие записи доступности в [startDate, endDate)
	ListBlockedInRange(ctx context.Context, roomIDs []uuid.UUID, startDate, endDate time.Time) ([]*domain.AvailabilityRecord, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListBlockingInRange возвращает pending/confirmed бронирования,
	// пересекающиеся с полуоткрытым диапазоном [startDate, endDate)
	ListBlockingInRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.Booking, error)
}

// PropertyRepository интерфейс репозитория объектов размещения
type PropertyRepository interface {
	// ListCandidates возвращает активные объекты, у которых есть хотя бы
	// одна комната из переданного множества свободных
	ListCandidates(ctx context.Context, freeRoomIDs []uuid.UUID) ([]*domain.Property, error)
}

// PricingServiceClient интерфейс клиента для PricingService
type PricingServiceClient interface {
	GetPriceRangesWithGracefulDegradation(ctx context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]*pricingservice.PriceRange, error)
}

// AgentServiceClient интерфейс клиента для AgentService
type AgentServiceClient interface {
	GetDiscounts(ctx context.Context, agentID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]*agentservice.Discount, error)
}

// SearchCache интерфейс двухуровневого кеша результатов поиска
type SearchCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

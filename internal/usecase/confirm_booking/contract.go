package confirm_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListBlockingInRange возвращает pending/confirmed бронирования,
	// пересекающиеся с полуоткрытым диапазоном [startDate, endDate)
	ListBlockingInRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CreateRoomSelection(ctx context.Context, sel *domain.BookingRoomSelection) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	// ListBlockedInRange возвращает блокирующие записи календаря доступности;
	// внутри транзакции строки блокируются FOR UPDATE
	ListBlockedInRange(ctx context.Context, roomIDs []uuid.UUID, startDate, endDate time.Time) ([]*domain.AvailabilityRecord, error)
	MarkBooked(ctx context.Context, roomIDs []uuid.UUID, nights []time.Time, reason string) error
}

// PropertyRepository интерфейс репозитория объектов размещения
type PropertyRepository interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

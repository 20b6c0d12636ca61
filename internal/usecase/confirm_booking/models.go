package confirm_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	UserID     *uuid.UUID  // ID пользователя (опционально для офлайн-броней)
	PropertyID uuid.UUID   // ID объекта размещения
	RoomIDs    []uuid.UUID // Запрошенные комнаты
	CheckIn    time.Time   // Дата заезда (UTC полночь)
	CheckOut   time.Time   // Дата выезда, в проживание не входит
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID   `json:"id"`
	PropertyID uuid.UUID   `json:"propertyId"`
	UserID     *uuid.UUID  `json:"userId,omitempty"`
	RoomIDs    []uuid.UUID `json:"roomIds"`
	CheckIn    string      `json:"checkIn"`
	CheckOut   string      `json:"checkOut"`
	Nights     int         `json:"nights"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

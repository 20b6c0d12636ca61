package confirm_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	confirmBooking "github.com/zomesstay/ZS-SearchService/internal/usecase/confirm_booking"
)

// ConfirmBookingRequest HTTP request модель подтверждения бронирования
type ConfirmBookingRequest struct {
	PropertyID string   `json:"propertyId"`
	RoomIDs    []string `json:"roomIds"`
	CheckIn    string   `json:"checkIn"`
	CheckOut   string   `json:"checkOut"`
}

// ConfirmBookingResponse HTTP response модель с созданным бронированием
type ConfirmBookingResponse struct {
	Success bool                     `json:"success"`
	Data    *confirmBooking.Response `json:"data"`
	Message string                   `json:"message"`
}

// ToUseCaseRequest создает запрос use case из HTTP запроса
func ToUseCaseRequest(req *ConfirmBookingRequest, userID uuid.UUID) (*confirmBooking.Request, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid propertyId: %v", err)
	}

	roomIDs := make([]uuid.UUID, len(req.RoomIDs))
	for i, raw := range req.RoomIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid roomIds[%d]: %v", i, err)
		}
		roomIDs[i] = id
	}

	checkIn, err := time.Parse(domain.DateFormat, req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid checkIn: %v", err)
	}
	checkOut, err := time.Parse(domain.DateFormat, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid checkOut: %v", err)
	}

	return &confirmBooking.Request{
		UserID:     &userID,
		PropertyID: propertyID,
		RoomIDs:    roomIDs,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}, nil
}

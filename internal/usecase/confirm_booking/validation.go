package confirm_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// validateRequest валидирует входные данные запроса
// Возвращает количество ночей при успешной валидации
func validateRequest(req *Request, now time.Time, maxStayNights int) (int, error) {
	if req.PropertyID == uuid.Nil {
		return 0, fmt.Errorf("%w: propertyId is required", ErrInvalidInput)
	}
	if len(req.RoomIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one room is required", ErrInvalidInput)
	}
	for _, id := range req.RoomIDs {
		if id == uuid.Nil {
			return 0, fmt.Errorf("%w: roomIds must not contain empty ids", ErrInvalidInput)
		}
	}
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return 0, fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	checkIn := dateutil.DayUTC(req.CheckIn)
	checkOut := dateutil.DayUTC(req.CheckOut)
	today := dateutil.DayUTC(now)

	if checkIn.Before(today) {
		return 0, ErrCheckInPast
	}

	nights, err := dateutil.NightsBetween(checkIn, checkOut)
	if err != nil {
		return 0, ErrInvalidDateRange
	}

	if maxStayNights > 0 && nights > maxStayNights {
		return 0, fmt.Errorf("%w: maximum stay is %d nights", ErrStayTooLong, maxStayNights)
	}

	return nights, nil
}

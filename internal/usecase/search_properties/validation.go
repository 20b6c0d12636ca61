package search_properties

import (
	"fmt"
	"time"

	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// validateRequest валидирует входные данные запроса
// Возвращает количество ночей при успешной валидации
func validateRequest(req *Request, now time.Time, maxStayNights int) (int, error) {
	if req.CheckIn.IsZero() {
		return 0, fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}
	if req.CheckOut.IsZero() {
		return 0, fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	if req.Guests.Adults < 0 || req.Guests.Children < 0 || req.Guests.Infants < 0 {
		return 0, fmt.Errorf("%w: guest counts must be non-negative", ErrInvalidInput)
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

	if req.Guests.TotalBedsNeeded() == 0 {
		return 0, ErrNoGuests
	}

	return nights, nil
}

// normalizeRequest приводит даты к UTC полуночи и количество комнат к минимуму
func normalizeRequest(req *Request) {
	req.CheckIn = dateutil.DayUTC(req.CheckIn)
	req.CheckOut = dateutil.DayUTC(req.CheckOut)
	if req.Guests.Rooms < 1 {
		req.Guests.Rooms = 1
	}
}

package dateutil

import (
	"errors"
	"time"
)

// DateFormat формат дат в API и ключах индексов
const DateFormat = "2006-01-02"

// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
var ErrInvalidRange = errors.New("dateutil: check-out must be after check-in")

// DayUTC нормализует дату к полуночи UTC
// Гарантирует отсутствие сдвигов из-за таймзоны сервера и DST
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay парсит строку YYYY-MM-DD в полночь UTC
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayUTC(t), nil
}

// NightsBetween возвращает количество ночей между заездом и выездом
// Обе даты нормализуются к полуночи UTC; диапазон полуоткрытый [checkIn, checkOut)
func NightsBetween(checkIn, checkOut time.Time) (int, error) {
	a := DayUTC(checkIn)
	b := DayUTC(checkOut)
	if !b.After(a) {
		return 0, ErrInvalidRange
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// DatesInRange возвращает список ночей проживания [checkIn, checkOut)
// День выезда не включается - в ночь выезда комната уже свободна
func DatesInRange(checkIn, checkOut time.Time) []time.Time {
	curr := DayUTC(checkIn)
	last := DayUTC(checkOut)

	dates := make([]time.Time, 0)
	for curr.Before(last) {
		dates = append(dates, curr)
		curr = curr.AddDate(0, 0, 1)
	}
	return dates
}

// DateKey возвращает ключ даты в формате YYYY-MM-DD (UTC)
func DateKey(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

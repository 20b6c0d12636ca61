package types

import (
	"fmt"
	"time"
)

const timeLayout = "15:04"

// TimeString время в формате HH:MM (без даты и секунд)
// Используется для времени заезда/выезда и других "настенных" времён,
// которые не должны зависеть от таймзоны сервера
type TimeString string

// NewTimeStringFromString парсит строку формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("types: invalid time string %q: %w", s, err)
	}
	return TimeString(s), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

package pricingservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pricingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("pricingservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PricingService недоступен и результаты поиска
	// следует отдавать без ценового диапазона
	ErrServiceDegraded = errors.New("pricingservice unavailable: graceful degradation applied")
)

package search_properties

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

	// ErrCheckInPast возвращается, когда дата заезда в прошлом
	ErrCheckInPast = errors.New("check-in date cannot be in the past")

	// ErrStayTooLong возвращается, когда длительность проживания превышает лимит
	ErrStayTooLong = errors.New("stay is too long")

	// ErrNoGuests возвращается, когда запрос не требует ни одного спального места
	ErrNoGuests = errors.New("at least one guest required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

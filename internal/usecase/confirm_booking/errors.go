package confirm_booking

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

	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrRoomsNotAvailable возвращается, когда хотя бы одна из запрошенных
	// комнат занята на одну из ночей проживания
	ErrRoomsNotAvailable = errors.New("rooms are not available for the requested dates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

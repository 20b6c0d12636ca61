package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	propertyRepo "github.com/zomesstay/ZS-SearchService/internal/infra/storage/property"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// UseCase use case подтверждения бронирования комнат
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	propertyRepo PropertyRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	maxStayNights int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	propRepo PropertyRepository,
	txManager TransactionManager,
	maxStayNights int,
	logger Logger,
) *UseCase {
	if maxStayNights <= 0 {
		maxStayNights = domain.DefaultMaxStayNights
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		roomRepo:      roomRepo,
		propertyRepo:  propRepo,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		maxStayNights: maxStayNights,
	}
}

// Execute выполняет use case подтверждения бронирования
// Использует сериализуемую транзакцию для предотвращения двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: property=%s, rooms=%d, checkIn=%s, checkOut=%s",
		req.PropertyID, len(req.RoomIDs),
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	nights, err := validateRequest(req, now, uc.maxStayNights)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	checkIn := dateutil.DayUTC(req.CheckIn)
	checkOut := dateutil.DayUTC(req.CheckOut)
	stayNights := dateutil.DatesInRange(checkIn, checkOut)

	// 2. Проверяем существование объекта
	if err := uc.propertyRepo.Exists(ctx, req.PropertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("ConfirmBooking: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to check property id=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to check property: %v", ErrInternal, err)
	}

	requested := make(map[uuid.UUID]struct{}, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		requested[id] = struct{}{}
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем календарь доступности с блокировкой FOR UPDATE
		records, err := uc.roomRepo.ListBlockedInRange(txCtx, req.RoomIDs, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to list availability records: %v", err)
			return fmt.Errorf("%w: failed to list availability records: %v", ErrInternal, err)
		}
		if len(records) > 0 {
			uc.logger.Warn("ConfirmBooking: %d blocking availability records for requested rooms", len(records))
			return ErrRoomsNotAvailable
		}

		// 3.2. Перепроверяем активные бронирования за период
		bookings, err := uc.bookingRepo.ListBlockingInRange(txCtx, checkIn, checkOut)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
		if conflictsWithBookings(bookings, requested, stayNights) {
			uc.logger.Warn("ConfirmBooking: requested rooms conflict with an existing booking")
			return ErrRoomsNotAvailable
		}

		// 3.3. Создаем бронирование
		booking := &domain.Booking{
			PropertyID: req.PropertyID,
			UserID:     req.UserID,
			StartDate:  checkIn,
			EndDate:    checkOut,
			Status:     domain.BookingConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.4. Фиксируем выбор комнат с явным списком ночей
		sel := &domain.BookingRoomSelection{
			BookingID: created.ID,
			RoomIDs:   req.RoomIDs,
			Reserved: domain.ReservedDates{
				Kind:  domain.ReservedExplicit,
				Dates: stayNights,
			},
		}
		if err := uc.bookingRepo.CreateRoomSelection(txCtx, sel); err != nil {
			uc.logger.Error("ConfirmBooking: failed to create room selection: %v", err)
			return fmt.Errorf("%w: failed to create room selection: %v", ErrInternal, err)
		}

		// 3.5. Помечаем ночи занятыми в календаре доступности
		reason := fmt.Sprintf("booking %s", created.ID)
		if err := uc.roomRepo.MarkBooked(txCtx, req.RoomIDs, stayNights, reason); err != nil {
			uc.logger.Error("ConfirmBooking: failed to mark rooms booked: %v", err)
			return fmt.Errorf("%w: failed to mark rooms booked: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		UserID:     result.UserID,
		RoomIDs:    req.RoomIDs,
		CheckIn:    checkIn.Format(domain.DateFormat),
		CheckOut:   checkOut.Format(domain.DateFormat),
		Nights:     nights,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
	}, nil
}

// conflictsWithBookings проверяет пересечение запрошенных комнат и ночей
// с выборками существующих активных бронирований
func conflictsWithBookings(bookings []*domain.Booking, requested map[uuid.UUID]struct{}, stayNights []time.Time) bool {
	wanted := make(map[string]struct{}, len(stayNights))
	for _, night := range stayNights {
		wanted[dateutil.DateKey(night)] = struct{}{}
	}

	for _, b := range bookings {
		if !b.BlocksRooms() {
			continue
		}
		for _, sel := range b.RoomSelections {
			touches := false
			for _, id := range sel.RoomIDs {
				if _, ok := requested[id]; ok {
					touches = true
					break
				}
			}
			if !touches {
				continue
			}
			for _, night := range sel.Nights(b.StartDate, b.EndDate) {
				if _, ok := wanted[dateutil.DateKey(night)]; ok {
					return true
				}
			}
		}
	}
	return false
}

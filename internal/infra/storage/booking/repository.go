package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
	"github.com/zomesstay/ZS-SearchService/pkg/dbmetrics"
	"github.com/zomesstay/ZS-SearchService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db  DBExecutor
	log Logger
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, log Logger) *Repository {
	return &Repository{db: db, log: log}
}

// ListBlockingInRange возвращает бронирования со статусом pending/confirmed,
// пересекающие полуоткрытый диапазон [startDate, endDate), вместе с их
// room selections. Тест пересечения: start_date < endDate AND end_date > startDate.
// Два bulk-запроса и join в памяти - без поштучных обращений
func (r *Repository) ListBlockingInRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"property_id",
		"user_id",
		"start_date",
		"end_date",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"is_deleted": false}).
		Where(squirrel.Eq{"status": domain.BlockingBookingStatuses}).
		Where(squirrel.Lt{"start_date": endDate}).
		Where(squirrel.Gt{"end_date": startDate}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	byID := make(map[uuid.UUID]*domain.Booking)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&b.ID,
			&b.PropertyID,
			&b.UserID,
			&b.StartDate,
			&b.EndDate,
			&b.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBlockingInRange - scan booking: %v", ErrScanRow, err)
		}

		b.StartDate = dateutil.DayUTC(b.StartDate)
		b.EndDate = dateutil.DayUTC(b.EndDate)
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		b.RoomSelections = make([]*domain.BookingRoomSelection, 0)

		bookings = append(bookings, &b)
		byID[b.ID] = &b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockingInRange - rows error: %v", ErrScanRow, err)
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	selections, err := r.listSelections(ctx, bookingIDs(bookings))
	if err != nil {
		return nil, err
	}

	for _, sel := range selections {
		if b, ok := byID[sel.BookingID]; ok {
			b.RoomSelections = append(b.RoomSelections, sel)
		}
	}

	return bookings, nil
}

// listSelections загружает room selections для набора бронирований
// JSON-колонки разбираются один раз здесь, при загрузке
func (r *Repository) listSelections(ctx context.Context, ids []uuid.UUID) ([]*domain.BookingRoomSelection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"room_ids",
		"check_in",
		"check_out",
		"dates_reserved",
	).
		From("booking_room_selections").
		Where(squirrel.Eq{"booking_id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listSelections - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSelections - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	raws := make([]rawSelection, 0)
	for rows.Next() {
		var raw rawSelection
		if err := rows.Scan(
			&raw.ID,
			&raw.BookingID,
			&raw.RoomIDs,
			&raw.CheckIn,
			&raw.CheckOut,
			&raw.DatesReserved,
		); err != nil {
			return nil, fmt.Errorf("%w: listSelections - scan selection: %v", ErrScanRow, err)
		}
		raws = append(raws, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSelections - rows error: %v", ErrScanRow, err)
	}

	return selectionsFromRaw(raws, r.log), nil
}

// Create создает бронирование
// Вызывается только внутри транзакции подтверждения (через context)
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"property_id",
			"user_id",
			"start_date",
			"end_date",
			"status",
		).
		Values(
			b.ID,
			b.PropertyID,
			b.UserID,
			b.StartDate,
			b.EndDate,
			b.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// CreateRoomSelection создает room selection бронирования
// roomIds и datesReserved сохраняются нативными JSONB-массивами
func (r *Repository) CreateRoomSelection(ctx context.Context, sel *domain.BookingRoomSelection) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if sel.ID == uuid.Nil {
		sel.ID = uuid.New()
	}

	roomIDs := make([]string, len(sel.RoomIDs))
	for i, id := range sel.RoomIDs {
		roomIDs[i] = id.String()
	}
	roomIDsJSON, err := encodeStrings(roomIDs)
	if err != nil {
		return fmt.Errorf("%w: CreateRoomSelection - encode room ids: %v", ErrBuildQuery, err)
	}

	dates := make([]string, len(sel.Reserved.Dates))
	for i, d := range sel.Reserved.Dates {
		dates[i] = dateutil.DateKey(d)
	}
	datesJSON, err := encodeStrings(dates)
	if err != nil {
		return fmt.Errorf("%w: CreateRoomSelection - encode dates: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("booking_room_selections").
		Columns(
			"id",
			"booking_id",
			"room_ids",
			"check_in",
			"check_out",
			"dates_reserved",
		).
		Values(
			sel.ID,
			sel.BookingID,
			roomIDsJSON,
			sel.Reserved.CheckIn,
			sel.Reserved.CheckOut,
			datesJSON,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateRoomSelection - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateRoomSelection - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func bookingIDs(bookings []*domain.Booking) []uuid.UUID {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}

package room

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dbmetrics"
	"github.com/zomesstay/ZS-SearchService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с комнатами и записями доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает вселенную комнат-кандидатов: активные неудаленные
// комнаты, чьи room type и объект тоже активны и не удалены
// Одним bulk-запросом, без поштучных обращений
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.property_room_type_id",
		"rt.property_id",
		"r.name",
		"r.code",
		"r.status",
	).
		From("rooms r").
		Join("property_room_types rt ON rt.id = r.property_room_type_id").
		Join("properties p ON p.id = rt.property_id").
		Where(squirrel.Eq{
			"r.is_deleted":  false,
			"r.status":      domain.RoomActive,
			"rt.is_deleted": false,
			"rt.is_active":  true,
			"p.is_deleted":  false,
			"p.status":      domain.PropertyActive,
		}).
		OrderBy("r.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID,
			&room.PropertyRoomTypeID,
			&room.PropertyID,
			&room.Name,
			&room.Code,
			&room.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan room: %v", ErrScanRow, err)
		}
		result = append(result, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListBlockedInRange возвращает блокирующие записи доступности для указанных
// комнат в полуоткрытом диапазоне [startDate, endDate)
// Если запрос выполняется внутри транзакции, строки блокируются FOR UPDATE
// (используется при подтверждении бронирования)
func (r *Repository) ListBlockedInRange(
	ctx context.Context,
	roomIDs []uuid.UUID,
	startDate, endDate time.Time,
) ([]*domain.AvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(roomIDs) == 0 {
		return []*domain.AvailabilityRecord{}, nil
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"room_id",
		"date",
		"status",
		"reason",
	).
		From("availability").
		Where(squirrel.Eq{"room_id": roomIDs}).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.Lt{"date": endDate}).
		Where(squirrel.Eq{"is_deleted": false}).
		Where(squirrel.Eq{"status": domain.BlockingAvailabilityStatuses}).
		OrderBy("date ASC")

	// Внутри транзакции подтверждения бронирования блокируем строки,
	// чтобы два параллельных подтверждения не заняли одну комнату
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.AvailabilityRecord, 0)
	for rows.Next() {
		var rec domain.AvailabilityRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.RoomID,
			&rec.Date,
			&rec.Status,
			&rec.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedInRange - scan record: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedInRange - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// MarkBooked создает записи доступности со статусом booked для каждой пары
// (комната, ночь) - вызывается внутри транзакции подтверждения бронирования
func (r *Repository) MarkBooked(ctx context.Context, roomIDs []uuid.UUID, nights []time.Time, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(roomIDs) == 0 || len(nights) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability").
		Columns("id", "room_id", "date", "status", "reason")

	for _, roomID := range roomIDs {
		for _, night := range nights {
			insertBuilder = insertBuilder.Values(
				uuid.New(),
				roomID,
				night,
				domain.AvailabilityBooked,
				reason,
			)
		}
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkBooked - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

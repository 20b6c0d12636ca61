package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dbmetrics"
	"github.com/zomesstay/ZS-SearchService/pkg/psqlbuilder"
	"github.com/zomesstay/ZS-SearchService/pkg/types"
)

// Repository репозиторий для работы с объектами размещения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListCandidates возвращает активные объекты, у которых есть хотя бы одна
// свободная комната из переданного множества, вместе с их room types и
// только свободными комнатами. Один joined bulk-запрос, сборка в памяти
func (r *Repository) ListCandidates(ctx context.Context, freeRoomIDs []uuid.UUID) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(freeRoomIDs) == 0 {
		return []*domain.Property{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.title",
		"p.description",
		"p.status",
		"p.location",
		"pt.name AS property_type",
		"p.cover_image",
		"p.check_in_time",
		"p.check_out_time",
		"p.owner_host_id",
		"p.avg_rating",
		"p.review_count",
		"p.created_at",
		"p.updated_at",
		"rt.id",
		"t.name AS room_type_name",
		"rt.bed_type",
		"rt.number_of_beds",
		"rt.occupancy",
		"rt.extra_bed_capacity",
		"rt.min_occupancy",
		"rt.max_occupancy",
		"r.id",
		"r.name",
		"r.code",
		"r.status",
	).
		From("properties p").
		Join("property_room_types rt ON rt.property_id = p.id").
		Join("room_types t ON t.id = rt.room_type_id").
		Join("rooms r ON r.property_room_type_id = rt.id").
		LeftJoin("property_types pt ON pt.id = p.property_type_id").
		Where(squirrel.Eq{
			"p.is_deleted":  false,
			"p.status":      domain.PropertyActive,
			"rt.is_deleted": false,
			"rt.is_active":  true,
			"r.is_deleted":  false,
			"r.status":      domain.RoomActive,
		}).
		Where(squirrel.Eq{"r.id": freeRoomIDs}).
		OrderBy("p.id ASC", "rt.id ASC", "r.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCandidates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCandidates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	propsByID := make(map[uuid.UUID]*domain.Property)
	typesByID := make(map[uuid.UUID]*domain.PropertyRoomType)

	for rows.Next() {
		var (
			prop domain.Property
			rt   domain.PropertyRoomType
			room domain.Room

			location     []byte
			propertyType sql.NullString
			coverImage   sql.NullString
			checkIn      sql.NullString
			checkOut     sql.NullString
			createdAt    sql.NullTime
			updatedAt    sql.NullTime
		)

		if err := rows.Scan(
			&prop.ID,
			&prop.Title,
			&prop.Description,
			&prop.Status,
			&location,
			&propertyType,
			&coverImage,
			&checkIn,
			&checkOut,
			&prop.OwnerHostID,
			&prop.AvgRating,
			&prop.ReviewCount,
			&createdAt,
			&updatedAt,
			&rt.ID,
			&rt.RoomTypeName,
			&rt.BedType,
			&rt.NumberOfBeds,
			&rt.Occupancy,
			&rt.ExtraBedCapacity,
			&rt.MinOccupancy,
			&rt.MaxOccupancy,
			&room.ID,
			&room.Name,
			&room.Code,
			&room.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: ListCandidates - scan row: %v", ErrScanRow, err)
		}

		p, ok := propsByID[prop.ID]
		if !ok {
			prop.Location = decodeLocation(location)
			if propertyType.Valid {
				prop.PropertyType = propertyType.String
			}
			if coverImage.Valid {
				prop.CoverImage = &coverImage.String
			}
			// Кривое настенное время в данных не должно ломать выдачу,
			// невалидное значение остается незаданным
			if checkIn.Valid {
				if ts, err := types.NewTimeStringFromString(checkIn.String); err == nil {
					prop.CheckInTime = ts
				}
			}
			if checkOut.Valid {
				if ts, err := types.NewTimeStringFromString(checkOut.String); err == nil {
					prop.CheckOutTime = ts
				}
			}
			prop.CreatedAt = createdAt.Time
			prop.UpdatedAt = updatedAt.Time
			prop.RoomTypes = make([]*domain.PropertyRoomType, 0)

			p = &prop
			propsByID[p.ID] = p
			properties = append(properties, p)
		}

		roomType, ok := typesByID[rt.ID]
		if !ok {
			rt.PropertyID = p.ID
			rt.IsActive = true
			rt.Rooms = make([]*domain.Room, 0)

			roomType = &rt
			typesByID[roomType.ID] = roomType
			p.RoomTypes = append(p.RoomTypes, roomType)
		}

		room.PropertyRoomTypeID = roomType.ID
		room.PropertyID = p.ID
		roomType.Rooms = append(roomType.Rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCandidates - rows error: %v", ErrScanRow, err)
	}

	return properties, nil
}

// ListLocations возвращает location всех активных объектов
// Используется для списка уникальных городов
func (r *Repository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("location").
		From("properties").
		Where(squirrel.Eq{
			"is_deleted": false,
			"status":     domain.PropertyActive,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan location: %v", ErrScanRow, err)
		}
		locations = append(locations, decodeLocation(raw))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// Exists проверяет, что объект существует, активен и не удален
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("properties").
		Where(squirrel.Eq{
			"id":         id,
			"is_deleted": false,
			"status":     domain.PropertyActive,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrPropertyNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return nil
}

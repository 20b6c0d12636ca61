package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
	"github.com/zomesstay/ZS-SearchService/pkg/ptr"
)

// rawSelection строка booking_room_selections до разбора JSON-колонок
// roomIds и datesReserved хранятся либо как нативный JSON-массив, либо
// (в старых строках) как JSON-строка с закодированным массивом
type rawSelection struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	RoomIDs       []byte
	CheckIn       sql.NullTime
	CheckOut      sql.NullTime
	DatesReserved []byte
}

// toDomain разбирает JSON-колонки один раз при загрузке и возвращает
// типизированный вариант вместо повторного "принюхивания" при каждом доступе
func (s *rawSelection) toDomain() (*domain.BookingRoomSelection, error) {
	roomIDs, err := decodeFlexibleStrings(s.RoomIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: selection %s roomIds: %v", ErrDecodeSelection, s.ID, err)
	}

	ids := make([]uuid.UUID, 0, len(roomIDs))
	for _, raw := range roomIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: selection %s room id %q: %v", ErrDecodeSelection, s.ID, raw, err)
		}
		ids = append(ids, id)
	}

	sel := &domain.BookingRoomSelection{
		ID:        s.ID,
		BookingID: s.BookingID,
		RoomIDs:   ids,
	}

	dateStrings, err := decodeFlexibleStrings(s.DatesReserved)
	if err != nil {
		return nil, fmt.Errorf("%w: selection %s datesReserved: %v", ErrDecodeSelection, s.ID, err)
	}

	if len(dateStrings) > 0 {
		dates := make([]time.Time, 0, len(dateStrings))
		for _, raw := range dateStrings {
			d, err := parseReservedDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: selection %s date %q: %v", ErrDecodeSelection, s.ID, raw, err)
			}
			dates = append(dates, d)
		}
		sel.Reserved = domain.ReservedDates{
			Kind:  domain.ReservedExplicit,
			Dates: dates,
		}
		return sel, nil
	}

	reserved := domain.ReservedDates{Kind: domain.ReservedImpliedRange}
	if s.CheckIn.Valid {
		reserved.CheckIn = ptr.Ptr(dateutil.DayUTC(s.CheckIn.Time))
	}
	if s.CheckOut.Valid {
		reserved.CheckOut = ptr.Ptr(dateutil.DayUTC(s.CheckOut.Time))
	}
	sel.Reserved = reserved

	return sel, nil
}

// selectionsFromRaw разбирает загруженные строки в доменные selections.
// Битую legacy-строку нельзя превращать в отказ всего поиска: она
// логируется и пропускается, бронирование без selections дальше
// обрабатывается политикой legacy_booking_policy
func selectionsFromRaw(raws []rawSelection, log Logger) []*domain.BookingRoomSelection {
	selections := make([]*domain.BookingRoomSelection, 0, len(raws))
	for i := range raws {
		sel, err := raws[i].toDomain()
		if err != nil {
			log.Warn("listSelections: skipping undecodable selection id=%s booking_id=%s: %v",
				raws[i].ID, raws[i].BookingID, err)
			continue
		}
		selections = append(selections, sel)
	}
	return selections
}

// decodeFlexibleStrings разбирает JSONB-значение, которое может быть
// null, массивом строк или JSON-строкой с закодированным массивом
func decodeFlexibleStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	// Legacy-строки: массив закодирован внутри JSON-строки
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("neither array nor string: %s", raw)
	}
	if encoded == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(encoded), &list); err != nil {
		return nil, fmt.Errorf("string payload is not a JSON array: %v", err)
	}
	return list, nil
}

// parseReservedDate разбирает дату из datesReserved: YYYY-MM-DD или полный RFC3339
func parseReservedDate(raw string) (time.Time, error) {
	if d, err := dateutil.ParseDay(raw); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dateutil.DayUTC(t), nil
}

// encodeStrings сериализует список в JSONB-массив для вставки
func encodeStrings(list []string) ([]byte, error) {
	return json.Marshal(list)
}

package search_properties

import (
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// unavailableIndex индекс занятости: ключ даты -> множество занятых комнат
type unavailableIndex map[string]map[uuid.UUID]struct{}

func (idx unavailableIndex) mark(date time.Time, roomID uuid.UUID) {
	key := dateutil.DateKey(date)
	rooms, ok := idx[key]
	if !ok {
		rooms = make(map[uuid.UUID]struct{})
		idx[key] = rooms
	}
	rooms[roomID] = struct{}{}
}

func (idx unavailableIndex) has(date time.Time, roomID uuid.UUID) bool {
	rooms, ok := idx[dateutil.DateKey(date)]
	if !ok {
		return false
	}
	_, busy := rooms[roomID]
	return busy
}

// buildUnavailableIndex строит индекс занятости из двух источников:
// записей календаря доступности и активных бронирований.
// Бронирования без выбранных комнат (legacy-строки) обрабатываются
// согласно политике: ignore пропускает их с предупреждением,
// block_property помечает занятыми все комнаты объекта на ночи пересечения.
func buildUnavailableIndex(
	records []*domain.AvailabilityRecord,
	bookings []*domain.Booking,
	roomsByProperty map[uuid.UUID][]uuid.UUID,
	checkIn, checkOut time.Time,
	policy domain.LegacyBookingPolicy,
	log Logger,
) unavailableIndex {
	idx := make(unavailableIndex)

	for _, rec := range records {
		if !rec.Blocks() {
			continue
		}
		idx.mark(rec.Date, rec.RoomID)
	}

	for _, b := range bookings {
		if !b.BlocksRooms() {
			continue
		}

		if !b.HasRoomSelections() {
			if policy == domain.LegacyPolicyBlockProperty {
				nights := overlapNights(b.StartDate, b.EndDate, checkIn, checkOut)
				for _, roomID := range roomsByProperty[b.PropertyID] {
					for _, night := range nights {
						idx.mark(night, roomID)
					}
				}
				log.Warn("buildUnavailableIndex: booking id=%s has no room selections, blocked property id=%s for %d nights",
					b.ID, b.PropertyID, len(nights))
			} else {
				log.Warn("buildUnavailableIndex: booking id=%s has no room selections, ignored", b.ID)
			}
			continue
		}

		for _, sel := range b.RoomSelections {
			for _, night := range sel.Nights(b.StartDate, b.EndDate) {
				for _, roomID := range sel.RoomIDs {
					idx.mark(night, roomID)
				}
			}
		}
	}

	return idx
}

// filterFreeRooms оставляет только комнаты, свободные каждую ночь проживания.
// Дата выезда в проверку не входит.
func filterFreeRooms(rooms []*domain.Room, idx unavailableIndex, nights []time.Time) []*domain.Room {
	free := make([]*domain.Room, 0, len(rooms))

	for _, room := range rooms {
		available := true
		for _, night := range nights {
			if idx.has(night, room.ID) {
				available = false
				break
			}
		}
		if available {
			free = append(free, room)
		}
	}

	return free
}

// overlapNights возвращает ночи пересечения двух полуоткрытых диапазонов
func overlapNights(start, end, windowStart, windowEnd time.Time) []time.Time {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	if !end.After(start) {
		return nil
	}
	return dateutil.DatesInRange(start, end)
}

package search_properties

import (
	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// pruneToFreeRooms оставляет в типах комнат объекта только свободные комнаты
// и отбрасывает типы, у которых свободных комнат не осталось
func pruneToFreeRooms(p *domain.Property, freeRoomIDs map[uuid.UUID]struct{}) {
	kept := make([]*domain.PropertyRoomType, 0, len(p.RoomTypes))
	for _, rt := range p.RoomTypes {
		if !rt.IsActive || rt.IsDeleted {
			continue
		}
		freeRooms := make([]*domain.Room, 0, len(rt.Rooms))
		for _, room := range rt.Rooms {
			if _, ok := freeRoomIDs[room.ID]; ok {
				freeRooms = append(freeRooms, room)
			}
		}
		if len(freeRooms) == 0 {
			continue
		}
		rt.Rooms = freeRooms
		kept = append(kept, rt)
	}
	p.RoomTypes = kept
}

// propertyCapacity считает суммарную вместимость свободных комнат объекта:
// (базовая вместимость + доп. места) на каждую свободную комнату каждого типа
func propertyCapacity(p *domain.Property) int {
	total := 0
	for _, rt := range p.RoomTypes {
		total += rt.RatedCapacity() * len(rt.Rooms)
	}
	return total
}

// freeRoomCount количество свободных комнат объекта после фильтрации
func freeRoomCount(p *domain.Property) int {
	count := 0
	for _, rt := range p.RoomTypes {
		count += len(rt.Rooms)
	}
	return count
}

// fitsCapacity проверяет, что объект вмещает запрошенных гостей
// и имеет хотя бы одну свободную комнату
func fitsCapacity(p *domain.Property, totalBedsNeeded int) bool {
	return freeRoomCount(p) >= domain.DefaultMinRooms && propertyCapacity(p) >= totalBedsNeeded
}

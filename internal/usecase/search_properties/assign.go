package search_properties

import (
	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/agentservice"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/pricingservice"
)

// buildPropertyResult собирает итоговую карточку объекта из отфильтрованного
// объекта, ценового диапазона и агентской скидки (оба опциональны)
func buildPropertyResult(
	p *domain.Property,
	nights int,
	priceRange *pricingservice.PriceRange,
	discount *agentservice.Discount,
) *PropertyResult {
	roomTypeNames := make([]string, 0, len(p.RoomTypes))
	availableRooms := make([]RoomTypeRooms, 0, len(p.RoomTypes))

	for _, rt := range p.RoomTypes {
		roomTypeNames = append(roomTypeNames, rt.RoomTypeName)

		rooms := make([]RoomResult, 0, len(rt.Rooms))
		for _, room := range rt.Rooms {
			rooms = append(rooms, RoomResult{
				ID:   room.ID,
				Name: room.Name,
				Code: room.Code,
			})
		}

		availableRooms = append(availableRooms, RoomTypeRooms{
			RoomTypeID:       rt.ID,
			RoomTypeName:     rt.RoomTypeName,
			Occupancy:        rt.Occupancy,
			ExtraBedCapacity: rt.ExtraBedCapacity,
			Rooms:            rooms,
		})
	}

	result := &PropertyResult{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		Location: LocationInfo{
			City:     p.Location.City,
			State:    p.Location.State,
			Country:  p.Location.Country,
			CityIcon: p.Location.CityIcon,
		},
		CoverImage:   p.CoverImage,
		PropertyType: p.PropertyType,
		Rating:       p.AvgRating,
		ReviewCount:  p.ReviewCount,
		RoomInfo: RoomInfo{
			TotalRooms:    freeRoomCount(p),
			RoomTypes:     len(p.RoomTypes),
			RoomTypeNames: roomTypeNames,
		},
		TotalCapacity:  propertyCapacity(p),
		Nights:         nights,
		AvailableRooms: availableRooms,
	}

	if !p.CheckInTime.IsZero() {
		result.CheckInTime = p.CheckInTime.String()
	}
	if !p.CheckOutTime.IsZero() {
		result.CheckOutTime = p.CheckOutTime.String()
	}

	if priceRange != nil {
		result.PriceRange = &PriceInfo{
			Min:      priceRange.Min,
			Max:      priceRange.Max,
			Currency: priceRange.Currency,
		}

		if discount != nil {
			result.AgentRate = &AgentRateInfo{
				Min:           discount.Apply(priceRange.Min),
				Max:           discount.Apply(priceRange.Max),
				Currency:      priceRange.Currency,
				DiscountType:  string(discount.Type),
				DiscountValue: discount.Value,
			}
		}
	}

	return result
}

// resultPropertyIDs собирает ID объектов для batch-запросов цен и скидок
func resultPropertyIDs(properties []*domain.Property) []uuid.UUID {
	ids := make([]uuid.UUID, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}
	return ids
}

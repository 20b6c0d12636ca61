package search_properties

import (
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// Request модель запроса поиска доступных объектов
type Request struct {
	CheckIn  time.Time        // Дата заезда (UTC полночь)
	CheckOut time.Time        // Дата выезда (UTC полночь), в результат не входит
	Guests   domain.GuestNeed // Состав гостей
	City     string           // Опциональный фильтр по городу
	AgentID  *uuid.UUID       // ID агента для расчета агентских тарифов
}

// Response модель ответа поиска
type Response struct {
	Results      []*PropertyResult `json:"results"`
	Total        int               `json:"total"`
	SearchParams SearchParams      `json:"searchParams"`
}

// SearchParams нормализованные параметры поиска, возвращаемые для справки
type SearchParams struct {
	CheckIn         string     `json:"checkIn"`
	CheckOut        string     `json:"checkOut"`
	Nights          int        `json:"nights"`
	Guests          GuestsEcho `json:"guests"`
	Rooms           int        `json:"rooms"`
	TotalBedsNeeded int        `json:"totalBedsNeeded"`
	City            string     `json:"city,omitempty"`
}

// GuestsEcho состав гостей в параметрах поиска
type GuestsEcho struct {
	Adults        int  `json:"adults"`
	Children      int  `json:"children"`
	Infants       int  `json:"infants"`
	InfantsUseBed bool `json:"infantsUseBed"`
}

// PropertyResult один объект размещения в результатах поиска
type PropertyResult struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       string         `json:"status"`
	Location     LocationInfo   `json:"location"`
	CoverImage   *string        `json:"coverImage"`
	PropertyType string         `json:"propertyType"`
	CheckInTime  string         `json:"checkInTime,omitempty"`
	CheckOutTime string         `json:"checkOutTime,omitempty"`
	Rating       float64        `json:"rating"`
	ReviewCount  int            `json:"reviewCount"`
	PriceRange   *PriceInfo     `json:"priceRange"`
	AgentRate    *AgentRateInfo `json:"agentRate"`
	RoomInfo     RoomInfo       `json:"roomInfo"`

	// TotalCapacity суммарная вместимость свободных комнат на все ночи
	TotalCapacity int `json:"totalCapacity"`
	Nights        int `json:"nights"`

	// AvailableRooms свободные на весь период комнаты, сгруппированные по типам
	AvailableRooms []RoomTypeRooms `json:"availableRooms"`
}

// LocationInfo адрес объекта в результатах поиска
type LocationInfo struct {
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	CityIcon string `json:"cityIcon,omitempty"`
}

// PriceInfo ценовой диапазон объекта
type PriceInfo struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// AgentRateInfo агентский тариф со скидкой
type AgentRateInfo struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Currency      string  `json:"currency"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
}

// RoomInfo сводка по свободным комнатам объекта
type RoomInfo struct {
	TotalRooms    int      `json:"totalRooms"`
	RoomTypes     int      `json:"roomTypes"`
	RoomTypeNames []string `json:"roomTypeNames"`
}

// RoomTypeRooms свободные комнаты одного типа с правилами вместимости
type RoomTypeRooms struct {
	RoomTypeID       uuid.UUID    `json:"roomTypeId"`
	RoomTypeName     string       `json:"roomTypeName"`
	Occupancy        int          `json:"occupancy"`
	ExtraBedCapacity int          `json:"extraBedCapacity"`
	Rooms            []RoomResult `json:"rooms"`
}

// RoomResult одна свободная комната
type RoomResult struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

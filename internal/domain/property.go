package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/pkg/types"
)

// PropertyStatus represents the lifecycle status of a property
type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertyBlocked  PropertyStatus = "blocked"
)

// Property represents a rentable property (stay) in the marketplace
type Property struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      PropertyStatus
	IsDeleted   bool

	Location     Location
	PropertyType string
	CoverImage   *string

	CheckInTime  types.TimeString
	CheckOutTime types.TimeString

	OwnerHostID uuid.UUID
	AvgRating   float64
	ReviewCount int

	RoomTypes []*PropertyRoomType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location is the denormalized location payload stored on the property
type Location struct {
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	CityIcon string `json:"cityIcon,omitempty"`
}

// IsBookable returns true if the property can appear in search results
func (p *Property) IsBookable() bool {
	return !p.IsDeleted && p.Status == PropertyActive
}

// InCity reports whether the property is located in the given city,
// compared case-insensitively on trimmed values
func (p *Property) InCity(city string) bool {
	return NormalizeCity(p.Location.City) == NormalizeCity(city)
}

// NormalizeCity canonicalizes a city name for comparison and grouping
func NormalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PropertyRoomType is a room-type configuration scoped to one property,
// carrying the occupancy rules used by the capacity filter
type PropertyRoomType struct {
	ID         uuid.UUID
	PropertyID uuid.UUID

	RoomTypeName string
	BedType      *string
	NumberOfBeds int

	// Occupancy is the base occupancy: guests housed without an extra bed
	Occupancy int
	// ExtraBedCapacity is the number of additional guests housable with extra beds
	ExtraBedCapacity int
	MinOccupancy     int
	MaxOccupancy     int

	IsActive  bool
	IsDeleted bool

	// Rooms holds the rooms of this type that survived the availability filter
	Rooms []*Room
}

// RatedCapacity returns guests one room of this type can legally house
func (rt *PropertyRoomType) RatedCapacity() int {
	return rt.Occupancy + rt.ExtraBedCapacity
}

// Room is a physical bookable unit belonging to exactly one room type
type Room struct {
	ID                 uuid.UUID
	PropertyRoomTypeID uuid.UUID
	PropertyID         uuid.UUID

	Name   string
	Code   string
	Status RoomStatus
}

// RoomStatus represents the administrative status of a room
type RoomStatus string

const (
	RoomActive   RoomStatus = "active"
	RoomInactive RoomStatus = "inactive"
)

package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BlockingBookingStatuses are the statuses under which a booking occupies its rooms
var BlockingBookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
}

// Booking represents a reservation over a half-open date range [StartDate, EndDate)
type Booking struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	UserID     *uuid.UUID

	StartDate time.Time
	EndDate   time.Time
	Status    BookingStatus
	IsDeleted bool

	RoomSelections []*BookingRoomSelection

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksRooms returns true if the booking makes its rooms unavailable
func (b *Booking) BlocksRooms() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// HasRoomSelections returns false for legacy rows whose rooms cannot be resolved
func (b *Booking) HasRoomSelections() bool {
	return len(b.RoomSelections) > 0
}

// ReservedDatesKind discriminates how a room selection states its dates
type ReservedDatesKind int

const (
	// ReservedExplicit - the selection carries an explicit list of reserved nights
	ReservedExplicit ReservedDatesKind = iota
	// ReservedImpliedRange - the nights are implied by the selection's own
	// check-in/check-out range (or, if absent, the booking's range)
	ReservedImpliedRange
)

// ReservedDates is the typed variant of a selection's date information,
// resolved once at load time instead of being re-sniffed per access
type ReservedDates struct {
	Kind     ReservedDatesKind
	Dates    []time.Time // set when Kind == ReservedExplicit, UTC midnights
	CheckIn  *time.Time  // set when Kind == ReservedImpliedRange (optional)
	CheckOut *time.Time
}

// BookingRoomSelection is one sub-reservation of a booking: a set of rooms
// plus the nights on which every one of them is occupied
type BookingRoomSelection struct {
	ID        uuid.UUID
	BookingID uuid.UUID

	RoomIDs  []uuid.UUID
	Reserved ReservedDates
}

// Nights resolves the reserved nights of the selection. For implied ranges
// the booking's own range serves as the fallback when the selection carries
// no check-in/check-out of its own.
func (s *BookingRoomSelection) Nights(bookingStart, bookingEnd time.Time) []time.Time {
	if s.Reserved.Kind == ReservedExplicit && len(s.Reserved.Dates) > 0 {
		return s.Reserved.Dates
	}

	start := bookingStart
	end := bookingEnd
	if s.Reserved.CheckIn != nil {
		start = *s.Reserved.CheckIn
	}
	if s.Reserved.CheckOut != nil {
		end = *s.Reserved.CheckOut
	}

	return dateutil.DatesInRange(start, end)
}

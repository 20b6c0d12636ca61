package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_BlocksRooms(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).BlocksRooms())
	assert.True(t, (&Booking{Status: BookingConfirmed}).BlocksRooms())
	assert.False(t, (&Booking{Status: BookingCancelled}).BlocksRooms())
	assert.False(t, (&Booking{Status: BookingCompleted}).BlocksRooms())
}

func TestBookingRoomSelection_Nights_Explicit(t *testing.T) {
	sel := &BookingRoomSelection{
		Reserved: ReservedDates{
			Kind:  ReservedExplicit,
			Dates: []time.Time{day(2026, 1, 10), day(2026, 1, 11)},
		},
	}

	nights := sel.Nights(day(2026, 1, 1), day(2026, 1, 31))

	require.Len(t, nights, 2)
	assert.Equal(t, day(2026, 1, 10), nights[0])
	assert.Equal(t, day(2026, 1, 11), nights[1])
}

func TestBookingRoomSelection_Nights_ImpliedFromSelectionRange(t *testing.T) {
	checkIn := day(2026, 1, 12)
	checkOut := day(2026, 1, 15)
	sel := &BookingRoomSelection{
		Reserved: ReservedDates{
			Kind:     ReservedImpliedRange,
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
		},
	}

	nights := sel.Nights(day(2026, 1, 1), day(2026, 1, 31))

	// Дата выезда не входит в ночи проживания
	require.Len(t, nights, 3)
	assert.Equal(t, day(2026, 1, 12), nights[0])
	assert.Equal(t, day(2026, 1, 14), nights[2])
}

func TestBookingRoomSelection_Nights_FallsBackToBookingRange(t *testing.T) {
	sel := &BookingRoomSelection{
		Reserved: ReservedDates{Kind: ReservedImpliedRange},
	}

	nights := sel.Nights(day(2026, 1, 10), day(2026, 1, 12))

	require.Len(t, nights, 2)
	assert.Equal(t, day(2026, 1, 10), nights[0])
	assert.Equal(t, day(2026, 1, 11), nights[1])
}

func TestGuestNeed_TotalBedsNeeded(t *testing.T) {
	need := GuestNeed{Adults: 2, Children: 1, Infants: 1}
	assert.Equal(t, 3, need.TotalBedsNeeded())

	need.InfantsUseBed = true
	assert.Equal(t, 4, need.TotalBedsNeeded())

	assert.Equal(t, 4, need.TotalGuests())
}

func TestPropertyRoomType_RatedCapacity(t *testing.T) {
	rt := &PropertyRoomType{Occupancy: 2, ExtraBedCapacity: 1}
	assert.Equal(t, 3, rt.RatedCapacity())
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "mumbai", NormalizeCity("  Mumbai "))
	assert.Equal(t, NormalizeCity("GOA"), NormalizeCity("goa"))
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityStatus is the explicit per-room, per-date override status.
// Absence of a record for a (room, date) pair means the room is available.
type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "available"
	AvailabilityBooked       AvailabilityStatus = "booked"
	AvailabilityMaintenance  AvailabilityStatus = "maintenance"
	AvailabilityBlocked      AvailabilityStatus = "blocked"
	AvailabilityOutOfService AvailabilityStatus = "out_of_service"
)

// BlockingAvailabilityStatuses are the statuses that make a room unavailable on a date
var BlockingAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityBooked,
	AvailabilityMaintenance,
	AvailabilityBlocked,
	AvailabilityOutOfService,
}

// AvailabilityRecord is a sparse per-room, per-date override
type AvailabilityRecord struct {
	ID     uuid.UUID
	RoomID uuid.UUID
	Date   time.Time
	Status AvailabilityStatus
	Reason *string
}

// Blocks returns true if the record makes its room unavailable on its date
func (r *AvailabilityRecord) Blocks() bool {
	switch r.Status {
	case AvailabilityBooked, AvailabilityMaintenance, AvailabilityBlocked, AvailabilityOutOfService:
		return true
	default:
		return false
	}
}

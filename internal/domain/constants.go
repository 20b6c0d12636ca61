package domain

// Default search limits
const (
	DefaultMaxStayNights = 30
	DefaultMinRooms      = 1
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// LegacyBookingPolicy controls how bookings without room selections (legacy
// rows) are treated when building the unavailable-room index
type LegacyBookingPolicy string

const (
	// LegacyPolicyIgnore marks no room unavailable for such bookings;
	// the fact is logged as a data-integrity warning
	LegacyPolicyIgnore LegacyBookingPolicy = "ignore"

	// LegacyPolicyBlockProperty conservatively blocks every room of the
	// booking's property for the overlap nights
	LegacyPolicyBlockProperty LegacyBookingPolicy = "block_property"
)

// Valid returns true if the policy value is known
func (p LegacyBookingPolicy) Valid() bool {
	return p == LegacyPolicyIgnore || p == LegacyPolicyBlockProperty
}

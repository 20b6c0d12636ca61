package search_properties

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/agentservice"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/pricingservice"
)

// ============================================
// Моки зависимостей use case
// ============================================

type mockRoomRepo struct {
	rooms   []*domain.Room
	records []*domain.AvailabilityRecord
	err     error
}

func (m *mockRoomRepo) ListActive(_ context.Context) ([]*domain.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rooms, nil
}

func (m *mockRoomRepo) ListBlockedInRange(_ context.Context, _ []uuid.UUID, _, _ time.Time) ([]*domain.AvailabilityRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

type mockBookingRepo struct {
	bookings []*domain.Booking
}

func (m *mockBookingRepo) ListBlockingInRange(_ context.Context, _, _ time.Time) ([]*domain.Booking, error) {
	return m.bookings, nil
}

type mockPropertyRepo struct {
	properties []*domain.Property
	calls      int
}

func (m *mockPropertyRepo) ListCandidates(_ context.Context, _ []uuid.UUID) ([]*domain.Property, error) {
	m.calls++
	return m.properties, nil
}

type mockPricingClient struct {
	ranges map[uuid.UUID]*pricingservice.PriceRange
	err    error
}

func (m *mockPricingClient) GetPriceRangesWithGracefulDegradation(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]*pricingservice.PriceRange, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ranges, nil
}

type mockAgentClient struct {
	discounts map[uuid.UUID]*agentservice.Discount
	err       error
}

func (m *mockAgentClient) GetDiscounts(_ context.Context, _ uuid.UUID, _ []uuid.UUID) (map[uuid.UUID]*agentservice.Discount, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.discounts, nil
}

type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := m.data[key]
	return payload, ok
}

func (m *mockCache) Set(_ context.Context, key string, payload []byte) {
	m.sets++
	m.data[key] = payload
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// ============================================
// Фикстуры
// ============================================

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testProperty один объект с одним типом комнат и заданным числом комнат
type testProperty struct {
	property *domain.Property
	rooms    []*domain.Room
}

func newTestProperty(city string, occupancy, extraBeds, roomCount int) *testProperty {
	propertyID := uuid.New()
	roomTypeID := uuid.New()

	rooms := make([]*domain.Room, roomCount)
	for i := range rooms {
		rooms[i] = &domain.Room{
			ID:                 uuid.New(),
			PropertyRoomTypeID: roomTypeID,
			PropertyID:         propertyID,
			Name:               fmt.Sprintf("Room %d", i+1),
			Status:             domain.RoomActive,
		}
	}

	property := &domain.Property{
		ID:     propertyID,
		Title:  "Test Stay",
		Status: domain.PropertyActive,
		Location: domain.Location{
			City: city,
		},
		RoomTypes: []*domain.PropertyRoomType{
			{
				ID:               roomTypeID,
				PropertyID:       propertyID,
				RoomTypeName:     "Deluxe",
				Occupancy:        occupancy,
				ExtraBedCapacity: extraBeds,
				IsActive:         true,
				Rooms:            rooms,
			},
		},
	}

	return &testProperty{property: property, rooms: rooms}
}

func newUseCase(
	roomRepo *mockRoomRepo,
	bookingRepo *mockBookingRepo,
	propRepo *mockPropertyRepo,
	pricing *mockPricingClient,
	agent *mockAgentClient,
	cache SearchCache,
	policy domain.LegacyBookingPolicy,
) *UseCase {
	uc := NewUseCase(roomRepo, bookingRepo, propRepo, pricing, agent, cache, 30, policy, nopLogger{})
	uc.timeProvider = fixedTime{now: day(2026, 1, 1)}
	return uc
}

func searchRequest(checkIn, checkOut time.Time, adults int) *Request {
	return &Request{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   domain.GuestNeed{Adults: adults, Rooms: 1},
	}
}

func bookingWithSelection(propertyID uuid.UUID, start, end time.Time, roomIDs ...uuid.UUID) *domain.Booking {
	bookingID := uuid.New()
	return &domain.Booking{
		ID:         bookingID,
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.BookingConfirmed,
		RoomSelections: []*domain.BookingRoomSelection{
			{
				ID:        uuid.New(),
				BookingID: bookingID,
				RoomIDs:   roomIDs,
				Reserved:  domain.ReservedDates{Kind: domain.ReservedImpliedRange},
			},
		},
	}
}

// ============================================
// Тесты
// ============================================

func TestExecute_BookingOverlapBlocksRoom(t *testing.T) {
	// Бронирование 10-13 января на R1, поиск 12-15 января:
	// ночь 12 января пересекается, свободна только R2
	tp := newTestProperty("Goa", 2, 1, 2)
	booking := bookingWithSelection(tp.property.ID, day(2026, 1, 10), day(2026, 1, 13), tp.rooms[0].ID)

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{bookings: []*domain.Booking{booking}},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	result := resp.Results[0]
	assert.Equal(t, 1, result.RoomInfo.TotalRooms)
	assert.Equal(t, 3, result.TotalCapacity)
	require.Len(t, result.AvailableRooms, 1)
	require.Len(t, result.AvailableRooms[0].Rooms, 1)
	assert.Equal(t, tp.rooms[1].ID, result.AvailableRooms[0].Rooms[0].ID)
}

func TestExecute_CheckoutDayDoesNotBlock(t *testing.T) {
	// Бронирование 10-12 января: 12 января гость выезжает,
	// комната свободна для заезда в тот же день
	tp := newTestProperty("Goa", 2, 0, 2)
	booking := bookingWithSelection(tp.property.ID, day(2026, 1, 10), day(2026, 1, 12), tp.rooms[0].ID)

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{bookings: []*domain.Booking{booking}},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Results[0].RoomInfo.TotalRooms)
}

func TestExecute_AvailabilityRecordBlocksRoom(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 2)
	record := &domain.AvailabilityRecord{
		ID:     uuid.New(),
		RoomID: tp.rooms[0].ID,
		Date:   day(2026, 1, 13),
		Status: domain.AvailabilityMaintenance,
	}

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms, records: []*domain.AvailabilityRecord{record}},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].RoomInfo.TotalRooms)
}

func TestExecute_CapacityFilter(t *testing.T) {
	// 3 комнаты по (2+1) места: вместимость 9
	makeUC := func() (*UseCase, *testProperty) {
		tp := newTestProperty("Goa", 2, 1, 3)
		uc := newUseCase(
			&mockRoomRepo{rooms: tp.rooms},
			&mockBookingRepo{},
			&mockPropertyRepo{properties: []*domain.Property{tp.property}},
			&mockPricingClient{},
			&mockAgentClient{},
			nil,
			domain.LegacyPolicyIgnore,
		)
		return uc, tp
	}

	uc, _ := makeUC()
	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 9))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 9, resp.Results[0].TotalCapacity)

	uc, _ = makeUC()
	resp, err = uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 10))
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
}

func TestExecute_InfantsUseBed(t *testing.T) {
	makeUC := func() *UseCase {
		tp := newTestProperty("Goa", 2, 1, 1)
		return newUseCase(
			&mockRoomRepo{rooms: tp.rooms},
			&mockBookingRepo{},
			&mockPropertyRepo{properties: []*domain.Property{tp.property}},
			&mockPricingClient{},
			&mockAgentClient{},
			nil,
			domain.LegacyPolicyIgnore,
		)
	}

	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.Guests.Children = 1
	req.Guests.Infants = 2

	// Младенцы без кроватей не учитываются: 3 места хватает
	resp, err := makeUC().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, 3, resp.SearchParams.TotalBedsNeeded)

	// С кроватями нужно 5 мест
	req = searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.Guests.Children = 1
	req.Guests.Infants = 2
	req.Guests.InfantsUseBed = true

	resp, err = makeUC().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 5, resp.SearchParams.TotalBedsNeeded)
}

func TestExecute_LegacyBookingIgnored(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 2)
	legacy := &domain.Booking{
		ID:         uuid.New(),
		PropertyID: tp.property.ID,
		StartDate:  day(2026, 1, 12),
		EndDate:    day(2026, 1, 14),
		Status:     domain.BookingConfirmed,
	}

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{bookings: []*domain.Booking{legacy}},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Results[0].RoomInfo.TotalRooms)
}

func TestExecute_LegacyBookingBlocksProperty(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 2)
	legacy := &domain.Booking{
		ID:         uuid.New(),
		PropertyID: tp.property.ID,
		StartDate:  day(2026, 1, 12),
		EndDate:    day(2026, 1, 14),
		Status:     domain.BookingConfirmed,
	}

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{bookings: []*domain.Booking{legacy}},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyBlockProperty,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
}

func TestExecute_CityFilter(t *testing.T) {
	goa := newTestProperty("Goa", 2, 0, 1)
	mumbai := newTestProperty("Mumbai", 2, 0, 1)
	rooms := append(append([]*domain.Room{}, goa.rooms...), mumbai.rooms...)

	uc := newUseCase(
		&mockRoomRepo{rooms: rooms},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{goa.property, mumbai.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.City = "  goa "

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, goa.property.ID, resp.Results[0].ID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newUseCase(
		&mockRoomRepo{},
		&mockBookingRepo{},
		&mockPropertyRepo{},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	// Заезд в прошлом (now = 2026-01-01)
	_, err := uc.Execute(context.Background(), searchRequest(day(2025, 12, 30), day(2026, 1, 2), 2))
	assert.ErrorIs(t, err, ErrCheckInPast)

	// Выезд не позже заезда
	_, err = uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 12), 2))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Слишком долгое проживание
	_, err = uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 3, 1), 2))
	assert.ErrorIs(t, err, ErrStayTooLong)

	// Ни одного гостя с кроватью
	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 0)
	req.Guests.Infants = 2
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoGuests)
}

func TestExecute_EmptyResultIsNotAnError(t *testing.T) {
	uc := newUseCase(
		&mockRoomRepo{},
		&mockBookingRepo{},
		&mockPropertyRepo{},
		&mockPricingClient{},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 3, resp.SearchParams.Nights)
}

func TestExecute_PricingDegradedReturnsResultsWithoutPrices(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 1)

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{err: pricingservice.ErrServiceDegraded},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Nil(t, resp.Results[0].PriceRange)
	assert.Nil(t, resp.Results[0].AgentRate)
}

func TestExecute_AgentDiscountApplied(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 1)
	agentID := uuid.New()

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{ranges: map[uuid.UUID]*pricingservice.PriceRange{
			tp.property.ID: {PropertyID: tp.property.ID, Min: 1000, Max: 2000, Currency: "INR"},
		}},
		&mockAgentClient{discounts: map[uuid.UUID]*agentservice.Discount{
			tp.property.ID: {PropertyID: tp.property.ID, Type: agentservice.DiscountPercentage, Value: 10},
		}},
		nil,
		domain.LegacyPolicyIgnore,
	)

	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.AgentID = &agentID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	result := resp.Results[0]
	require.NotNil(t, result.PriceRange)
	assert.Equal(t, 1000.0, result.PriceRange.Min)

	require.NotNil(t, result.AgentRate)
	assert.Equal(t, 900.0, result.AgentRate.Min)
	assert.Equal(t, 1800.0, result.AgentRate.Max)
	assert.Equal(t, "percentage", result.AgentRate.DiscountType)
}

func TestExecute_NotApprovedAgentGetsPlainResults(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 1)
	agentID := uuid.New()

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{ranges: map[uuid.UUID]*pricingservice.PriceRange{
			tp.property.ID: {PropertyID: tp.property.ID, Min: 1000, Max: 2000, Currency: "INR"},
		}},
		&mockAgentClient{err: agentservice.ErrAgentNotApproved},
		nil,
		domain.LegacyPolicyIgnore,
	)

	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.AgentID = &agentID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].PriceRange)
	assert.Nil(t, resp.Results[0].AgentRate)
}

func TestExecute_RepeatedSearchIsIdempotent(t *testing.T) {
	// Без кеша: тот же запрос на неизменном снимке данных дает
	// идентичный результат
	tp := newTestProperty("Goa", 2, 1, 2)
	booking := bookingWithSelection(tp.property.ID, day(2026, 1, 10), day(2026, 1, 13), tp.rooms[0].ID)

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{bookings: []*domain.Booking{booking}},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{ranges: map[uuid.UUID]*pricingservice.PriceRange{
			tp.property.ID: {PropertyID: tp.property.ID, Min: 1000, Max: 2000, Currency: "INR"},
		}},
		&mockAgentClient{},
		nil,
		domain.LegacyPolicyIgnore,
	)

	first, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)
	require.Len(t, first.Results, 1)

	second, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExecute_CacheHitSkipsRepositories(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 1)
	cache := newMockCache()
	propRepo := &mockPropertyRepo{properties: []*domain.Property{tp.property}}

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{},
		propRepo,
		&mockPricingClient{},
		&mockAgentClient{},
		cache,
		domain.LegacyPolicyIgnore,
	)

	// Первый запрос заполняет кеш
	resp, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, propRepo.calls)

	// Второй идентичный запрос обслуживается из кеша
	cached, err := uc.Execute(context.Background(), searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2))
	require.NoError(t, err)
	assert.Equal(t, resp.Total, cached.Total)
	assert.Equal(t, 1, propRepo.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_AgentRequestBypassesCache(t *testing.T) {
	tp := newTestProperty("Goa", 2, 0, 1)
	cache := newMockCache()
	agentID := uuid.New()

	uc := newUseCase(
		&mockRoomRepo{rooms: tp.rooms},
		&mockBookingRepo{},
		&mockPropertyRepo{properties: []*domain.Property{tp.property}},
		&mockPricingClient{},
		&mockAgentClient{},
		cache,
		domain.LegacyPolicyIgnore,
	)

	req := searchRequest(day(2026, 1, 12), day(2026, 1, 15), 2)
	req.AgentID = &agentID

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.sets)
}

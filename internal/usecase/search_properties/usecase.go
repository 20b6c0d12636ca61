package search_properties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	agentClient "github.com/zomesstay/ZS-SearchService/internal/integrations/agentservice"
	"github.com/zomesstay/ZS-SearchService/internal/integrations/pricingservice"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// UseCase use case поиска доступных объектов размещения
type UseCase struct {
	roomRepo      RoomRepository
	bookingRepo   BookingRepository
	propertyRepo  PropertyRepository
	pricingClient PricingServiceClient
	agentSvc      AgentServiceClient
	cache         SearchCache
	timeProvider  TimeProvider
	logger        Logger

	maxStayNights int
	legacyPolicy  domain.LegacyBookingPolicy
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, если кеширование отключено
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	pricingClient PricingServiceClient,
	agentSvc AgentServiceClient,
	cache SearchCache,
	maxStayNights int,
	legacyPolicy domain.LegacyBookingPolicy,
	logger Logger,
) *UseCase {
	if maxStayNights <= 0 {
		maxStayNights = domain.DefaultMaxStayNights
	}
	if !legacyPolicy.Valid() {
		legacyPolicy = domain.LegacyPolicyIgnore
	}
	return &UseCase{
		roomRepo:      roomRepo,
		bookingRepo:   bookingRepo,
		propertyRepo:  propertyRepo,
		pricingClient: pricingClient,
		agentSvc:      agentSvc,
		cache:         cache,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		maxStayNights: maxStayNights,
		legacyPolicy:  legacyPolicy,
	}
}

// Execute выполняет поиск доступных объектов на весь период проживания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и нормализация входных данных
	now := uc.timeProvider.Now()
	nights, err := validateRequest(req, now, uc.maxStayNights)
	if err != nil {
		uc.logger.Warn("SearchProperties: validation failed: %v", err)
		return nil, err
	}
	normalizeRequest(req)

	uc.logger.Info("SearchProperties: checkIn=%s, checkOut=%s, nights=%d, beds=%d, city=%q",
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat),
		nights, req.Guests.TotalBedsNeeded(), req.City)

	// 2. Проба кеша; агентские запросы персонализированы и не кешируются
	key := cacheKey(req)
	if cached, ok := uc.probeCache(ctx, key, req); ok {
		return cached, nil
	}

	// 3. Вселенная активных комнат
	rooms, err := uc.roomRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("SearchProperties: failed to list active rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list active rooms: %v", ErrInternal, err)
	}
	if len(rooms) == 0 {
		uc.logger.Info("SearchProperties: no active rooms")
		return uc.emptyResponse(req, nights), nil
	}

	roomIDs := make([]uuid.UUID, len(rooms))
	roomsByProperty := make(map[uuid.UUID][]uuid.UUID)
	for i, room := range rooms {
		roomIDs[i] = room.ID
		roomsByProperty[room.PropertyID] = append(roomsByProperty[room.PropertyID], room.ID)
	}

	// 4. Блокирующие записи календаря и активные бронирования за период
	records, err := uc.roomRepo.ListBlockedInRange(ctx, roomIDs, req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Error("SearchProperties: failed to list availability records: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability records: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListBlockingInRange(ctx, req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Error("SearchProperties: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 5. Индекс занятости и фильтр по всему периоду проживания
	idx := buildUnavailableIndex(records, bookings, roomsByProperty,
		req.CheckIn, req.CheckOut, uc.legacyPolicy, uc.logger)

	stayNights := dateutil.DatesInRange(req.CheckIn, req.CheckOut)
	freeRooms := filterFreeRooms(rooms, idx, stayNights)

	uc.logger.Info("SearchProperties: %d of %d rooms free for the whole stay", len(freeRooms), len(rooms))

	if len(freeRooms) == 0 {
		return uc.finish(ctx, key, req, uc.emptyResponse(req, nights))
	}

	freeRoomIDs := make(map[uuid.UUID]struct{}, len(freeRooms))
	freeIDList := make([]uuid.UUID, len(freeRooms))
	for i, room := range freeRooms {
		freeRoomIDs[room.ID] = struct{}{}
		freeIDList[i] = room.ID
	}

	// 6. Объекты-кандидаты, фильтр по вместимости и городу
	candidates, err := uc.propertyRepo.ListCandidates(ctx, freeIDList)
	if err != nil {
		uc.logger.Error("SearchProperties: failed to list candidate properties: %v", err)
		return nil, fmt.Errorf("%w: failed to list candidate properties: %v", ErrInternal, err)
	}

	totalBedsNeeded := req.Guests.TotalBedsNeeded()
	matched := make([]*domain.Property, 0, len(candidates))
	for _, p := range candidates {
		if !p.IsBookable() {
			continue
		}
		if req.City != "" && !p.InCity(req.City) {
			continue
		}
		pruneToFreeRooms(p, freeRoomIDs)
		if !fitsCapacity(p, totalBedsNeeded) {
			continue
		}
		matched = append(matched, p)
	}

	uc.logger.Info("SearchProperties: %d of %d candidate properties match capacity", len(matched), len(candidates))

	if len(matched) == 0 {
		return uc.finish(ctx, key, req, uc.emptyResponse(req, nights))
	}

	// 7. Ценовой и агентский оверлеи
	propertyIDs := resultPropertyIDs(matched)

	priceRanges := uc.fetchPriceRanges(ctx, propertyIDs)
	discounts := uc.fetchAgentDiscounts(ctx, req.AgentID, propertyIDs)

	results := make([]*PropertyResult, 0, len(matched))
	for _, p := range matched {
		results = append(results, buildPropertyResult(p, nights, priceRanges[p.ID], discounts[p.ID]))
	}

	resp := &Response{
		Results:      results,
		Total:        len(results),
		SearchParams: buildSearchParams(req, nights),
	}

	return uc.finish(ctx, key, req, resp)
}

// probeCache пытается отдать результат из кеша
func (uc *UseCase) probeCache(ctx context.Context, key string, req *Request) (*Response, bool) {
	if uc.cache == nil || req.AgentID != nil {
		return nil, false
	}

	payload, ok := uc.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		uc.logger.Warn("SearchProperties: failed to decode cached response: %v", err)
		return nil, false
	}

	uc.logger.Info("SearchProperties: cache hit, %d results", resp.Total)
	return &resp, true
}

// finish сохраняет результат в кеш и возвращает его
func (uc *UseCase) finish(ctx context.Context, key string, req *Request, resp *Response) (*Response, error) {
	if uc.cache != nil && req.AgentID == nil {
		if payload, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, key, payload)
		} else {
			uc.logger.Warn("SearchProperties: failed to encode response for cache: %v", err)
		}
	}
	return resp, nil
}

// fetchPriceRanges получает ценовые диапазоны с graceful degradation:
// при недоступности сервиса цен результаты отдаются без цен
func (uc *UseCase) fetchPriceRanges(ctx context.Context, propertyIDs []uuid.UUID) map[uuid.UUID]*pricingservice.PriceRange {
	if uc.pricingClient == nil {
		return nil
	}

	ranges, err := uc.pricingClient.GetPriceRangesWithGracefulDegradation(ctx, propertyIDs)
	if err != nil {
		uc.logger.Warn("SearchProperties: pricing degraded, results without prices: %v", err)
		return nil
	}
	return ranges
}

// fetchAgentDiscounts получает агентские скидки; неодобренный агент
// получает обычные результаты без агентских тарифов
func (uc *UseCase) fetchAgentDiscounts(ctx context.Context, agentID *uuid.UUID, propertyIDs []uuid.UUID) map[uuid.UUID]*agentClient.Discount {
	if agentID == nil || uc.agentSvc == nil {
		return nil
	}

	discounts, err := uc.agentSvc.GetDiscounts(ctx, *agentID, propertyIDs)
	if err != nil {
		if errors.Is(err, agentClient.ErrAgentNotApproved) {
			uc.logger.Warn("SearchProperties: agent id=%s is not approved", agentID)
		} else {
			uc.logger.Error("SearchProperties: failed to fetch agent discounts: %v", err)
		}
		return nil
	}
	return discounts
}

// emptyResponse ответ без результатов с заполненными параметрами поиска
func (uc *UseCase) emptyResponse(req *Request, nights int) *Response {
	return &Response{
		Results:      []*PropertyResult{},
		Total:        0,
		SearchParams: buildSearchParams(req, nights),
	}
}

// buildSearchParams нормализованные параметры поиска для ответа
func buildSearchParams(req *Request, nights int) SearchParams {
	return SearchParams{
		CheckIn:  req.CheckIn.Format(domain.DateFormat),
		CheckOut: req.CheckOut.Format(domain.DateFormat),
		Nights:   nights,
		Guests: GuestsEcho{
			Adults:        req.Guests.Adults,
			Children:      req.Guests.Children,
			Infants:       req.Guests.Infants,
			InfantsUseBed: req.Guests.InfantsUseBed,
		},
		Rooms:           req.Guests.Rooms,
		TotalBedsNeeded: req.Guests.TotalBedsNeeded(),
		City:            req.City,
	}
}

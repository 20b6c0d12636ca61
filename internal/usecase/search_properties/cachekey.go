package search_properties

import (
	"fmt"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/pkg/dateutil"
)

// cacheKey строит ключ кеша из нормализованных параметров запроса.
// Агентские запросы не кешируются, поэтому AgentID в ключ не входит.
func cacheKey(req *Request) string {
	return fmt.Sprintf("search:%s:%s:a%d:c%d:i%d:r%d:b%t:%s",
		dateutil.DateKey(req.CheckIn),
		dateutil.DateKey(req.CheckOut),
		req.Guests.Adults,
		req.Guests.Children,
		req.Guests.Infants,
		req.Guests.Rooms,
		req.Guests.InfantsUseBed,
		domain.NormalizeCity(req.City),
	)
}

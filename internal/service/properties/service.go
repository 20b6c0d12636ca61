package properties

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
	"github.com/zomesstay/ZS-SearchService/internal/service/properties/models"
)

// Service сервис для работы со справочной информацией об объектах размещения
type Service struct {
	propertyRepo PropertyRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(propertyRepo PropertyRepository, logger Logger) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// GetUniqueCities возвращает список уникальных городов с активными объектами.
// Дубликаты сворачиваются без учета регистра, сохраняется написание первого вхождения.
func (s *Service) GetUniqueCities(ctx context.Context) (*models.CityListResponse, error) {
	s.logger.Info("GetUniqueCities: fetching locations")

	locations, err := s.propertyRepo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("GetUniqueCities: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetUniqueCities - repository error: %v", ErrInternal, err)
	}

	seen := make(map[string]struct{}, len(locations))
	cities := make([]models.CityInfo, 0, len(locations))
	for _, loc := range locations {
		key := domain.NormalizeCity(loc.City)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cities = append(cities, models.CityInfo{
			City:     strings.TrimSpace(loc.City),
			State:    loc.State,
			Country:  loc.Country,
			CityIcon: loc.CityIcon,
		})
	}

	sort.Slice(cities, func(i, j int) bool {
		return domain.NormalizeCity(cities[i].City) < domain.NormalizeCity(cities[j].City)
	})

	s.logger.Info("GetUniqueCities: found %d unique cities", len(cities))
	return &models.CityListResponse{
		Cities: cities,
		Total:  len(cities),
	}, nil
}

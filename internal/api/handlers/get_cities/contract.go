package get_cities

import (
	"context"

	"github.com/zomesstay/ZS-SearchService/internal/service/properties/models"
)

type PropertiesService interface {
	GetUniqueCities(ctx context.Context) (*models.CityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package properties

import (
	"context"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов размещения
type PropertyRepository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

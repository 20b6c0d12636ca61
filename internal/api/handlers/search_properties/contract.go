package search_properties

import (
	"context"

	searchProperties "github.com/zomesstay/ZS-SearchService/internal/usecase/search_properties"
)

type SearchPropertiesUseCase interface {
	Execute(ctx context.Context, req *searchProperties.Request) (*searchProperties.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

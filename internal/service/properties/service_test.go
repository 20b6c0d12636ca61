package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

type mockPropertyRepo struct {
	locations []domain.Location
	err       error
}

func (m *mockPropertyRepo) ListLocations(_ context.Context) ([]domain.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.locations, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetUniqueCities_DedupesCaseInsensitive(t *testing.T) {
	repo := &mockPropertyRepo{
		locations: []domain.Location{
			{City: "Mumbai", State: "MH"},
			{City: "goa"},
			{City: " MUMBAI ", State: "MH"},
			{City: "Goa"},
			{City: "Alibaug"},
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUniqueCities(context.Background())
	require.NoError(t, err)

	// Дубликаты свернуты, сохранено написание первого вхождения,
	// список отсортирован по алфавиту
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "Alibaug", resp.Cities[0].City)
	assert.Equal(t, "goa", resp.Cities[1].City)
	assert.Equal(t, "Mumbai", resp.Cities[2].City)
}

func TestGetUniqueCities_SkipsEmptyCities(t *testing.T) {
	repo := &mockPropertyRepo{
		locations: []domain.Location{
			{City: ""},
			{City: "   "},
			{City: "Goa"},
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUniqueCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestGetUniqueCities_RepositoryError(t *testing.T) {
	repo := &mockPropertyRepo{err: errors.New("boom")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetUniqueCities(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

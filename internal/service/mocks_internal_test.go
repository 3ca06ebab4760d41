package service

import (
	"context"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/pathfinder"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FetchCachedPlaces(ctx context.Context, query string, maxAge time.Duration) ([]models.Place, error) {
	args := m.Called(ctx, query, maxAge)
	places, _ := args.Get(0).([]models.Place)
	return places, args.Error(1)
}

func (m *mockRepo) StorePlaces(ctx context.Context, query string, places []models.Place) error {
	return m.Called(ctx, query, places).Error(0)
}

func (m *mockRepo) SaveRoute(ctx context.Context, record models.RouteRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) ListRoutes(ctx context.Context, limit int) ([]models.RouteRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]models.RouteRecord)
	return records, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	args := m.Called(ctx, query, limit)
	places, _ := args.Get(0).([]models.Place)
	return places, args.Error(1)
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) FindPath(ctx context.Context, req pathfinder.Request) (*models.PathResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.PathResult)
	return result, args.Error(1)
}

func (m *mockFinder) Health(ctx context.Context) (*models.HealthStatus, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*models.HealthStatus)
	return status, args.Error(1)
}

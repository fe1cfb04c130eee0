package resolver

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trip-gateway/internal/models"
)

// MockCatalog is a mock implementation of LaunchSource.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetAllLaunches(ctx context.Context) ([]*models.Launch, error) {
	args := m.Called(ctx)
	launches, _ := args.Get(0).([]*models.Launch)
	return launches, args.Error(1)
}

func (m *MockCatalog) GetLaunchByID(ctx context.Context, id int) (*models.Launch, error) {
	args := m.Called(ctx, id)
	launch, _ := args.Get(0).(*models.Launch)
	return launch, args.Error(1)
}

func (m *MockCatalog) GetLaunchesByIDs(ctx context.Context, ids []int) ([]*models.Launch, error) {
	args := m.Called(ctx, ids)
	launches, _ := args.Get(0).([]*models.Launch)
	return launches, args.Error(1)
}

// MockStore is a mock implementation of TripStore.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStore) GetUserTrips(ctx context.Context, userID int64) ([]int, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]int)
	return ids, args.Error(1)
}

func (m *MockStore) AddTrips(ctx context.Context, userID int64, launchIDs []int) ([]models.TripResult, error) {
	args := m.Called(ctx, userID, launchIDs)
	results, _ := args.Get(0).([]models.TripResult)
	return results, args.Error(1)
}

func (m *MockStore) RemoveTrip(ctx context.Context, userID int64, launchID int) (bool, error) {
	args := m.Called(ctx, userID, launchID)
	return args.Bool(0), args.Error(1)
}

func launch(id int, cursor string) *models.Launch {
	return &models.Launch{ID: id, Cursor: cursor, Mission: &models.Mission{}}
}

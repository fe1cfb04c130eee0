package resolver

import (
	"context"
	"sync"

	"trip-gateway/internal/models"
)

// LaunchSource is the read side of the launch catalog.
type LaunchSource interface {
	GetAllLaunches(ctx context.Context) ([]*models.Launch, error)
	GetLaunchByID(ctx context.Context, id int) (*models.Launch, error)
	GetLaunchesByIDs(ctx context.Context, ids []int) ([]*models.Launch, error)
}

// TripStore holds users and their bookings.
type TripStore interface {
	FindOrCreateUser(ctx context.Context, email string) (*models.User, error)
	GetUserTrips(ctx context.Context, userID int64) ([]int, error)
	AddTrips(ctx context.Context, userID int64, launchIDs []int) ([]models.TripResult, error)
	RemoveTrip(ctx context.Context, userID int64, launchID int) (bool, error)
}

// Scope is everything one request may touch: the caller (nil when
// anonymous) and the backends. Build a new Scope per request.
type Scope struct {
	User    *models.User
	Catalog LaunchSource
	Store   TripStore

	mu     sync.Mutex
	booked map[int]struct{}
}

func NewScope(user *models.User, catalog LaunchSource, store TripStore) *Scope {
	return &Scope{User: user, Catalog: catalog, Store: store}
}

// bookedSet loads the caller's booked launch ids once per scope.
func (s *Scope) bookedSet(ctx context.Context) (map[int]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.booked != nil {
		return s.booked, nil
	}
	ids, err := s.Store.GetUserTrips(ctx, s.User.ID)
	if err != nil {
		return nil, err
	}
	booked := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		booked[id] = struct{}{}
	}
	s.booked = booked
	return booked, nil
}

func (s *Scope) forgetBookings() {
	s.mu.Lock()
	s.booked = nil
	s.mu.Unlock()
}

type scopeKey struct{}

func NewContext(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

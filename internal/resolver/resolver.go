package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"trip-gateway/internal/auth"
	"trip-gateway/internal/metrics"
	"trip-gateway/internal/models"
)

const (
	msgBooked      = "trips booked successfully"
	msgCancelled   = "trip cancelled"
	msgNotBooked   = "failed to cancel trip: launch %d was not booked"
	msgBookFailure = "the following launches couldn't be booked: %s"
)

// Resolver implements the graph operations. It holds only process-wide
// collaborators; everything request specific arrives in a *Scope.
type Resolver struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger, metrics: m}
}

// Launches pages through the catalog in its native order. An unreachable
// catalog reads as an empty connection.
func (r *Resolver) Launches(ctx context.Context, s *Scope, pageSize *int32, after *string) (*models.LaunchConnection, error) {
	all, err := s.Catalog.GetAllLaunches(ctx)
	if err != nil {
		if errors.Is(err, models.ErrUpstreamUnavailable) {
			r.logger.Warn("launch catalog unavailable, serving empty page", zap.Error(err))
			return &models.LaunchConnection{Launches: []*models.Launch{}}, nil
		}
		return nil, errors.Wrap(err, "list launches")
	}

	size := 0
	if pageSize != nil {
		size = int(*pageSize)
	}
	cursor := ""
	if after != nil {
		cursor = *after
	}
	return Paginate(all, size, cursor)
}

// Launch returns nil when the id is malformed or unknown to the catalog.
func (r *Resolver) Launch(ctx context.Context, s *Scope, id string) (*models.Launch, error) {
	launchID, err := ParseLaunchID(id)
	if err != nil {
		return nil, nil
	}
	launch, err := s.Catalog.GetLaunchByID(ctx, launchID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "launch %d", launchID)
	}
	return launch, nil
}

func (r *Resolver) Me(s *Scope) *models.User {
	return s.User
}

// Trips returns the launches booked by the caller. Bookings the catalog no
// longer knows stay in the result as nil entries.
func (r *Resolver) Trips(ctx context.Context, s *Scope) ([]*models.Launch, error) {
	if s.User == nil {
		return []*models.Launch{}, nil
	}
	ids, err := s.Store.GetUserTrips(ctx, s.User.ID)
	if err != nil {
		return nil, errors.Wrap(err, "user trips")
	}
	if len(ids) == 0 {
		return []*models.Launch{}, nil
	}

	launches, err := s.Catalog.GetLaunchesByIDs(ctx, ids)
	var missing *models.MissingLaunchesError
	if errors.As(err, &missing) {
		r.logger.Warn("booked launches missing from catalog",
			zap.Int64("user_id", s.User.ID),
			zap.Ints("launch_ids", missing.IDs))
		return launches, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "user trips")
	}
	return launches, nil
}

// IsBooked is false for anonymous callers.
func (r *Resolver) IsBooked(ctx context.Context, s *Scope, launch *models.Launch) (bool, error) {
	if s.User == nil || launch == nil {
		return false, nil
	}
	booked, err := s.bookedSet(ctx)
	if err != nil {
		return false, errors.Wrap(err, "is booked")
	}
	_, ok := booked[launch.ID]
	return ok, nil
}

// MissionPatch picks the patch URL for size, LARGE when size is nil.
func MissionPatch(m *models.Mission, size *string) *string {
	patchSize := models.DefaultPatchSize
	if size != nil {
		patchSize = models.PatchSize(*size)
	}
	return m.Patch(patchSize)
}

// BookTrips books every launch id for the caller. Ids are independent: the
// launches that exist are booked even if others fail. Launches in the
// response line up with ids, nil where the catalog had nothing.
func (r *Resolver) BookTrips(ctx context.Context, s *Scope, ids []string) (*models.TripUpdateResponse, error) {
	if s.User == nil {
		return nil, errors.Wrap(models.ErrUnauthenticated, "book trips")
	}

	failures := make([]string, len(ids))
	var (
		launchIDs []int
		positions []int
	)
	for i, raw := range ids {
		id, err := ParseLaunchID(raw)
		if err != nil {
			failures[i] = fmt.Sprintf("%q (invalid id)", raw)
			continue
		}
		launchIDs = append(launchIDs, id)
		positions = append(positions, i)
	}

	launches := make([]*models.Launch, len(ids))
	var bookable []int
	if len(launchIDs) > 0 {
		found, err := s.Catalog.GetLaunchesByIDs(ctx, launchIDs)
		var missing *models.MissingLaunchesError
		if err != nil && !errors.As(err, &missing) {
			return nil, errors.Wrap(err, "book trips")
		}
		for j, launch := range found {
			pos := positions[j]
			launches[pos] = launch
			if launch == nil {
				failures[pos] = fmt.Sprintf("%d (launch not found)", launchIDs[j])
				continue
			}
			bookable = append(bookable, launchIDs[j])
		}
	}

	if len(bookable) > 0 {
		results, err := s.Store.AddTrips(ctx, s.User.ID, bookable)
		s.forgetBookings()
		if err != nil {
			return nil, errors.Wrap(err, "book trips")
		}
		for _, res := range results {
			if res.Err == nil {
				continue
			}
			r.logger.Warn("booking failed",
				zap.Int64("user_id", s.User.ID),
				zap.Int("launch_id", res.LaunchID),
				zap.Error(res.Err))
			for j, id := range launchIDs {
				if id == res.LaunchID && failures[positions[j]] == "" {
					failures[positions[j]] = fmt.Sprintf("%d (booking failed)", id)
				}
			}
		}
	}

	var failed []string
	for _, f := range failures {
		if f != "" {
			failed = append(failed, f)
		}
	}

	resp := &models.TripUpdateResponse{Success: len(failed) == 0, Launches: launches}
	if resp.Success {
		resp.Message = ptr(msgBooked)
	} else {
		resp.Message = ptr(fmt.Sprintf(msgBookFailure, strings.Join(failed, ", ")))
	}
	r.metrics.TripUpdate("book", resp.Success)
	return resp, nil
}

// CancelTrip succeeds only if the caller actually held the booking.
func (r *Resolver) CancelTrip(ctx context.Context, s *Scope, id string) (*models.TripUpdateResponse, error) {
	if s.User == nil {
		return nil, errors.Wrap(models.ErrUnauthenticated, "cancel trip")
	}
	launchID, err := ParseLaunchID(id)
	if err != nil {
		return nil, err
	}

	removed, err := s.Store.RemoveTrip(ctx, s.User.ID, launchID)
	if err != nil {
		return nil, errors.Wrap(err, "cancel trip")
	}
	s.forgetBookings()
	r.metrics.TripUpdate("cancel", removed)

	resp := &models.TripUpdateResponse{Success: removed, Launches: []*models.Launch{}}
	if removed {
		resp.Message = ptr(msgCancelled)
	} else {
		resp.Message = ptr(fmt.Sprintf(msgNotBooked, launchID))
	}
	if launch := r.lookupLaunch(ctx, s, launchID); launch != nil {
		resp.Launches = append(resp.Launches, launch)
	}
	return resp, nil
}

// lookupLaunch is a best effort fetch for reconciling a response that has
// already been decided.
func (r *Resolver) lookupLaunch(ctx context.Context, s *Scope, id int) *models.Launch {
	launch, err := s.Catalog.GetLaunchByID(ctx, id)
	if err != nil {
		r.logger.Debug("launch lookup failed", zap.Int("launch_id", id), zap.Error(err))
		return nil
	}
	return launch
}

// Login returns the credential for email, creating the user on first login.
// Nothing secret is checked.
func (r *Resolver) Login(ctx context.Context, s *Scope, email string) (string, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return "", err
	}
	user, err := s.Store.FindOrCreateUser(ctx, email)
	if err != nil {
		return "", errors.Wrap(err, "login")
	}
	return auth.EncodeCredential(user.Email), nil
}

// ParseLaunchID converts a graph ID into a catalog flight number.
func ParseLaunchID(id string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || n < 0 {
		return 0, errors.Wrapf(models.ErrInvalidInput, "invalid launch id %q", id)
	}
	return n, nil
}

func ptr[T any](v T) *T {
	return &v
}

package database

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trip-gateway/internal/models"
)

// maxTripWriters caps the inserts one AddTrips call keeps in flight.
const maxTripWriters = 4

// FindOrCreateUser returns the user with the given email, creating it first if
// needed. The upsert runs as one statement against the unique email index, so
// concurrent callers always end up with the same row.
func (s *service) FindOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	query := `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id, email, created_at, updated_at
	`
	var user models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "find or create user %q", email)
	}
	return &user, nil
}

func (s *service) GetUserTrips(ctx context.Context, userID int64) ([]int, error) {
	query := `
		SELECT launch_id
		FROM trips
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "get trips for user %d", userID)
	}
	defer rows.Close()

	launchIDs := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrapf(err, "scan trip for user %d", userID)
		}
		launchIDs = append(launchIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate trips for user %d", userID)
	}
	return launchIDs, nil
}

// AddTrips books each launch independently and concurrently. Booking a launch
// the user already holds succeeds. Per-launch failures are reported in the
// results, aligned with launchIDs; the returned error is only set when ctx
// ends before every launch was tried.
func (s *service) AddTrips(ctx context.Context, userID int64, launchIDs []int) ([]models.TripResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := `
		INSERT INTO trips (user_id, launch_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, launch_id) DO NOTHING
	`
	results := make([]models.TripResult, len(launchIDs))

	var g errgroup.Group
	g.SetLimit(maxTripWriters)
	for i, launchID := range launchIDs {
		g.Go(func() error {
			results[i] = models.TripResult{LaunchID: launchID}
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			if _, err := s.db.ExecContext(ctx, query, userID, launchID); err != nil {
				s.logger.Warn("add trip failed",
					zap.Int64("user_id", userID),
					zap.Int("launch_id", launchID),
					zap.Error(err))
				results[i].Err = errors.Wrapf(err, "add trip %d", launchID)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

// RemoveTrip reports whether the user had the booking.
func (s *service) RemoveTrip(ctx context.Context, userID int64, launchID int) (bool, error) {
	query := `DELETE FROM trips WHERE user_id = $1 AND launch_id = $2`

	res, err := s.db.ExecContext(ctx, query, userID, launchID)
	if err != nil {
		return false, errors.Wrapf(err, "remove trip %d", launchID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "remove trip %d", launchID)
	}
	return n > 0, nil
}

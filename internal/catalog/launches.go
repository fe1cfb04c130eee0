package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trip-gateway/internal/models"
)

const (
	endpointLaunches = "launches"
	endpointLaunch   = "launch"
)

// GetAllLaunches returns every launch in catalog order.
//
// A response that is not a collection degrades to an empty result with a nil
// error. A transport failure also yields an empty result, but with an error
// wrapping models.ErrUpstreamUnavailable so the two cases stay distinguishable.
func (c *Client) GetAllLaunches(ctx context.Context) ([]*models.Launch, error) {
	rawURL, err := c.endpointURL("launches", nil)
	if err != nil {
		return []*models.Launch{}, err
	}
	body, err := c.fetch(ctx, endpointLaunches, rawURL)
	if err != nil {
		return []*models.Launch{}, err
	}

	records, ok := decodeCollection(body)
	if !ok {
		c.logger.Warn("catalog returned a malformed launch collection, degrading to empty",
			zap.String("url", rawURL))
		c.metrics.CatalogOutcome(endpointLaunches, "degraded")
		return []*models.Launch{}, nil
	}

	launches := make([]*models.Launch, 0, len(records))
	for i, rec := range records {
		var raw RawLaunch
		if err := json.Unmarshal(rec, &raw); err != nil {
			c.logger.Warn("skipping malformed launch record", zap.Int("index", i), zap.Error(err))
			continue
		}
		launches = append(launches, ReduceLaunch(raw))
	}
	return launches, nil
}

// GetLaunchByID returns the launch with the given flight number, or an error
// wrapping models.ErrNotFound when the catalog has no such flight.
func (c *Client) GetLaunchByID(ctx context.Context, id int) (*models.Launch, error) {
	rawURL, err := c.endpointURL("launches", url.Values{"flight_number": {strconv.Itoa(id)}})
	if err != nil {
		return nil, err
	}
	body, err := c.fetch(ctx, endpointLaunch, rawURL)
	if err != nil {
		return nil, err
	}

	records, ok := decodeCollection(body)
	if !ok {
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "launch %d: malformed catalog response", id)
	}
	for _, rec := range records {
		var raw RawLaunch
		if err := json.Unmarshal(rec, &raw); err != nil {
			return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "launch %d: %v", id, err)
		}
		if raw.FlightNumber == id {
			return ReduceLaunch(raw), nil
		}
	}
	c.metrics.CatalogOutcome(endpointLaunch, "not_found")
	return nil, errors.Wrapf(models.ErrNotFound, "launch %d", id)
}

// GetLaunchesByIDs fetches ids concurrently. The result is aligned with ids.
// Unknown ids leave a nil gap and are reported through a
// *models.MissingLaunchesError alongside the aligned result. Any other
// failure fails the whole batch.
func (c *Client) GetLaunchesByIDs(ctx context.Context, ids []int) ([]*models.Launch, error) {
	launches := make([]*models.Launch, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i, id := range ids {
		g.Go(func() error {
			launch, err := c.GetLaunchByID(gctx, id)
			switch {
			case err == nil:
				launches[i] = launch
			case errors.Is(err, models.ErrNotFound):
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "get launches by ids")
	}

	var missing []int
	for i, launch := range launches {
		if launch == nil {
			missing = append(missing, ids[i])
		}
	}
	if len(missing) > 0 {
		return launches, &models.MissingLaunchesError{IDs: missing}
	}
	return launches, nil
}

package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"

	"trip-gateway/internal/models"
	"trip-gateway/internal/resolver"
)

var errNoScope = errors.New("request scope missing from context")

// Root resolves both Query and Mutation fields.
type Root struct {
	r *resolver.Resolver
}

func scopeFrom(ctx context.Context) (*resolver.Scope, error) {
	s, ok := resolver.FromContext(ctx)
	if !ok {
		return nil, errNoScope
	}
	return s, nil
}

func (root *Root) Launches(ctx context.Context, args struct {
	PageSize *int32
	After    *string
}) (*launchConnectionResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	conn, err := root.r.Launches(ctx, s, args.PageSize, args.After)
	if err != nil {
		return nil, err
	}
	return &launchConnectionResolver{conn: conn, root: root}, nil
}

func (root *Root) Launch(ctx context.Context, args struct{ ID graphql.ID }) (*launchResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	launch, err := root.r.Launch(ctx, s, string(args.ID))
	if err != nil || launch == nil {
		return nil, err
	}
	return &launchResolver{launch: launch, root: root}, nil
}

func (root *Root) Me(ctx context.Context) (*userResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	user := root.r.Me(s)
	if user == nil {
		return nil, nil
	}
	return &userResolver{user: user, root: root}, nil
}

func (root *Root) BookTrips(ctx context.Context, args struct{ LaunchIDs []*graphql.ID }) (*tripUpdateResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(args.LaunchIDs))
	for _, id := range args.LaunchIDs {
		if id == nil {
			ids = append(ids, "")
			continue
		}
		ids = append(ids, string(*id))
	}
	resp, err := root.r.BookTrips(ctx, s, ids)
	return root.tripUpdate(resp, err)
}

func (root *Root) CancelTrip(ctx context.Context, args struct{ LaunchID graphql.ID }) (*tripUpdateResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := root.r.CancelTrip(ctx, s, string(args.LaunchID))
	return root.tripUpdate(resp, err)
}

func (root *Root) Login(ctx context.Context, args struct{ Email *string }) (*string, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	email := ""
	if args.Email != nil {
		email = *args.Email
	}
	token, err := root.r.Login(ctx, s, email)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// tripUpdate turns expected mutation failures into an unsuccessful response.
// Anything else stays a GraphQL error.
func (root *Root) tripUpdate(resp *models.TripUpdateResponse, err error) (*tripUpdateResolver, error) {
	switch {
	case err == nil:
	case errors.Is(err, models.ErrUnauthenticated):
		msg := "you must be logged in to update trips"
		resp = &models.TripUpdateResponse{Message: &msg}
	case errors.Is(err, models.ErrInvalidInput):
		msg := err.Error()
		resp = &models.TripUpdateResponse{Message: &msg}
	default:
		return nil, err
	}
	return &tripUpdateResolver{resp: resp, root: root}, nil
}

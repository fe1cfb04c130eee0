package graph

import (
	"context"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"trip-gateway/internal/models"
	"trip-gateway/internal/resolver"
)

type launchConnectionResolver struct {
	conn *models.LaunchConnection
	root *Root
}

func (c *launchConnectionResolver) Cursor() string { return c.conn.Cursor }

func (c *launchConnectionResolver) HasMore() bool { return c.conn.HasMore }

func (c *launchConnectionResolver) Launches() []*launchResolver {
	return c.root.launches(c.conn.Launches)
}

// launches wraps entities one to one; nil entries stay null.
func (root *Root) launches(ls []*models.Launch) []*launchResolver {
	out := make([]*launchResolver, len(ls))
	for i, l := range ls {
		if l != nil {
			out[i] = &launchResolver{launch: l, root: root}
		}
	}
	return out
}

type launchResolver struct {
	launch *models.Launch
	root   *Root
}

func (l *launchResolver) ID() graphql.ID {
	return graphql.ID(strconv.Itoa(l.launch.ID))
}

func (l *launchResolver) Site() *string { return l.launch.Site }

func (l *launchResolver) Mission() *missionResolver {
	if l.launch.Mission == nil {
		return nil
	}
	return &missionResolver{mission: l.launch.Mission}
}

func (l *launchResolver) Rocket() *rocketResolver {
	if l.launch.Rocket == nil {
		return nil
	}
	return &rocketResolver{rocket: l.launch.Rocket}
}

func (l *launchResolver) IsBooked(ctx context.Context) (bool, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return false, err
	}
	return l.root.r.IsBooked(ctx, s, l.launch)
}

type missionResolver struct {
	mission *models.Mission
}

func (m *missionResolver) Name() *string { return m.mission.Name }

func (m *missionResolver) MissionPatch(args struct {
	Mission *string
	Size    *string
}) *string {
	return resolver.MissionPatch(m.mission, args.Size)
}

type rocketResolver struct {
	rocket *models.Rocket
}

func (r *rocketResolver) ID() graphql.ID { return graphql.ID(r.rocket.ID) }

func (r *rocketResolver) Name() *string { return r.rocket.Name }

func (r *rocketResolver) Type() *string { return r.rocket.Type }

type userResolver struct {
	user *models.User
	root *Root
}

func (u *userResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(u.user.ID, 10))
}

func (u *userResolver) Email() string { return u.user.Email }

func (u *userResolver) Trips(ctx context.Context) ([]*launchResolver, error) {
	s, err := scopeFrom(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := u.root.r.Trips(ctx, s)
	if err != nil {
		return nil, err
	}
	return u.root.launches(trips), nil
}

type tripUpdateResolver struct {
	resp *models.TripUpdateResponse
	root *Root
}

func (t *tripUpdateResolver) Success() bool { return t.resp.Success }

func (t *tripUpdateResolver) Message() *string { return t.resp.Message }

func (t *tripUpdateResolver) Launches() *[]*launchResolver {
	if t.resp.Launches == nil {
		return nil
	}
	ls := t.root.launches(t.resp.Launches)
	return &ls
}

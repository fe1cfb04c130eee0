package catalog

import (
	"strconv"

	"trip-gateway/internal/models"
)

// RawLaunch is a launch record as served by the catalog. Every nested
// object is optional.
type RawLaunch struct {
	FlightNumber   int        `json:"flight_number"`
	LaunchDateUnix *int64     `json:"launch_date_unix"`
	LaunchSite     *RawSite   `json:"launch_site"`
	MissionName    *string    `json:"mission_name"`
	Links          *RawLinks  `json:"links"`
	Rocket         *RawRocket `json:"rocket"`
}

type RawSite struct {
	SiteName *string `json:"site_name"`
}

type RawLinks struct {
	MissionPatchSmall *string `json:"mission_patch_small"`
	MissionPatch      *string `json:"mission_patch"`
}

type RawRocket struct {
	RocketID   string  `json:"rocket_id"`
	RocketName *string `json:"rocket_name"`
	RocketType *string `json:"rocket_type"`
}

// ReduceLaunch maps a catalog record onto the canonical Launch. It never
// fails: absent sub-objects leave the matching fields nil.
func ReduceLaunch(raw RawLaunch) *models.Launch {
	launch := &models.Launch{
		ID:      raw.FlightNumber,
		Mission: &models.Mission{Name: raw.MissionName},
	}
	if raw.LaunchDateUnix != nil {
		launch.Cursor = strconv.FormatInt(*raw.LaunchDateUnix, 10)
	}
	if raw.LaunchSite != nil {
		launch.Site = raw.LaunchSite.SiteName
	}
	if raw.Links != nil {
		launch.Mission.MissionPatchSmall = raw.Links.MissionPatchSmall
		launch.Mission.MissionPatchLarge = raw.Links.MissionPatch
	}
	if raw.Rocket != nil {
		launch.Rocket = &models.Rocket{
			ID:   raw.Rocket.RocketID,
			Name: raw.Rocket.RocketName,
			Type: raw.Rocket.RocketType,
		}
	}
	return launch
}

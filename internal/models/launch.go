package models

// Launch is the canonical launch entity reduced from a catalog record.
// Whether the current caller booked it is not part of the entity.
type Launch struct {
	ID      int      `json:"id"`
	Cursor  string   `json:"cursor"`
	Site    *string  `json:"site,omitempty"`
	Mission *Mission `json:"mission,omitempty"`
	Rocket  *Rocket  `json:"rocket,omitempty"`
}

type Mission struct {
	Name              *string `json:"name,omitempty"`
	MissionPatchSmall *string `json:"missionPatchSmall,omitempty"`
	MissionPatchLarge *string `json:"missionPatchLarge,omitempty"`
}

type Rocket struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

type PatchSize string

const (
	PatchSizeSmall PatchSize = "SMALL"
	PatchSizeLarge PatchSize = "LARGE"

	// DefaultPatchSize is used when a caller does not ask for a size.
	DefaultPatchSize = PatchSizeLarge
)

// Patch returns the patch URL for the requested size.
func (m *Mission) Patch(size PatchSize) *string {
	if m == nil {
		return nil
	}
	if size == PatchSizeSmall {
		return m.MissionPatchSmall
	}
	return m.MissionPatchLarge
}

type LaunchConnection struct {
	Cursor   string    `json:"cursor"`
	HasMore  bool      `json:"hasMore"`
	Launches []*Launch `json:"launches"`
}

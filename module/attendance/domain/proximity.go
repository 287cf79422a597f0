package domain

type ProximityState struct {
	// DistanceMeters is nil until the first fix has been evaluated.
	DistanceMeters *float64 `json:"distance_meters"`
	Eligible       bool     `json:"eligible"`
}

type Target struct {
	EstablishmentID string     `json:"establishment_id"`
	Coordinate      Coordinate `json:"coordinate"`
	RadiusMeters    float64    `json:"radius_meters"`
}

type SessionState string

const (
	AwaitingFirstFix SessionState = "awaiting_first_fix"
	Tracking         SessionState = "tracking"
)

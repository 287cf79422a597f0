package domain

import "time"

type ClockKind string

const (
	ClockIn  ClockKind = "in"
	ClockOut ClockKind = "out"
)

func (k ClockKind) Valid() bool {
	return k == ClockIn || k == ClockOut
}

type ClockEntry struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EstablishmentID string     `json:"establishment_id"`
	Kind            ClockKind  `json:"kind"`
	Location        Coordinate `json:"location"`
	DistanceMeters  float64    `json:"distance_meters"`
	RecordedAt      time.Time  `json:"recorded_at"`
}

type ClockEvent struct {
	Entry     ClockEntry `json:"entry"`
	Timestamp int64      `json:"timestamp"`
}

package domain

import "time"

type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies inside the WGS84 ranges.
// NaN fails both comparisons and is rejected.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

type Fix struct {
	Coordinate
	Timestamp time.Time `json:"timestamp"`
}

type EmployeeLocation struct {
	EmployeeID string `json:"employee_id"`
	Fix        Fix    `json:"fix"`
}

type HistoryQuery struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
}

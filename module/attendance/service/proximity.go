package service

import (
	"fmt"
	"math"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

const earthRadiusMeters = 6371000

// Evaluate returns the great-circle distance between observer and target and
// whether it falls within radiusMeters. A distance equal to the radius is eligible.
func Evaluate(observer, target domain.Coordinate, radiusMeters float64) (domain.ProximityState, error) {
	if !observer.Valid() {
		return domain.ProximityState{}, fmt.Errorf("observer %v: %w", observer, domain.ErrInvalidInput)
	}
	if !target.Valid() {
		return domain.ProximityState{}, fmt.Errorf("target %v: %w", target, domain.ErrInvalidInput)
	}
	if err := validateRadius(radiusMeters); err != nil {
		return domain.ProximityState{}, err
	}

	dist := haversine(observer.Lat, observer.Lon, target.Lat, target.Lon)
	return domain.ProximityState{
		DistanceMeters: &dist,
		Eligible:       dist <= radiusMeters,
	}, nil
}

func validateRadius(radiusMeters float64) error {
	if !(radiusMeters > 0) || math.IsInf(radiusMeters, 1) {
		return fmt.Errorf("radius %v: must be positive: %w", radiusMeters, domain.ErrInvalidInput)
	}
	return nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can leave a just outside [0,1] near antipodes
	a = math.Min(1, math.Max(0, a))
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

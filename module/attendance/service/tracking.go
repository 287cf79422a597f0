package service

import (
	"context"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

// TrackingService opens proximity sessions for an employee against the
// establishment they are assigned to.
type TrackingService struct {
	targets targetResolver
	sources func(employeeID string) LocationSource
}

func NewTrackingService(targets targetResolver, sources func(employeeID string) LocationSource) *TrackingService {
	return &TrackingService{targets: targets, sources: sources}
}

// Watch resolves the target once; it stays fixed for the life of the session.
func (s *TrackingService) Watch(ctx context.Context, employeeID string, onUpdate func(domain.ProximityState)) (*Session, domain.Target, error) {
	target, err := s.targets.ResolveTarget(ctx, employeeID)
	if err != nil {
		return nil, domain.Target{}, err
	}

	session, err := ObserveStream(s.sources(employeeID), target.Coordinate, target.RadiusMeters, onUpdate)
	if err != nil {
		return nil, domain.Target{}, err
	}
	return session, target, nil
}

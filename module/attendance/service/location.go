package service

import (
	"context"
	"fmt"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
)

type coordinatePublisher interface {
	Publish(employeeID string, c domain.Coordinate)
}

type LocationService struct {
	repo database.LocationRepository
	hub  coordinatePublisher
}

func NewLocationService(repo database.LocationRepository, hub coordinatePublisher) *LocationService {
	return &LocationService{repo: repo, hub: hub}
}

// Report stores a device fix as the employee's last known location and
// forwards it to any live proximity session.
func (s *LocationService) Report(ctx context.Context, el *domain.EmployeeLocation) error {
	if el.EmployeeID == "" {
		return fmt.Errorf("employee_id: required: %w", domain.ErrInvalidInput)
	}
	if !el.Fix.Valid() {
		return fmt.Errorf("fix %v: %w", el.Fix.Coordinate, domain.ErrInvalidInput)
	}

	if err := s.repo.Insert(ctx, el); err != nil {
		return fmt.Errorf("save location: %w", err)
	}

	s.hub.Publish(el.EmployeeID, el.Fix.Coordinate)
	return nil
}

func (s *LocationService) GetLatest(ctx context.Context, employeeID string) (*domain.EmployeeLocation, error) {
	return s.repo.GetLatest(ctx, employeeID)
}

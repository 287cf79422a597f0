package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/publisher"
)

type targetResolver interface {
	ResolveTarget(ctx context.Context, employeeID string) (domain.Target, error)
}

type ClockService struct {
	repo      database.ClockRepository
	targets   targetResolver
	publisher publisher.ClockPublisher
	now       func() time.Time
}

func NewClockService(repo database.ClockRepository, targets targetResolver, pub publisher.ClockPublisher) *ClockService {
	return &ClockService{
		repo:      repo,
		targets:   targets,
		publisher: pub,
		now:       time.Now,
	}
}

// Check evaluates observer against the employee's establishment without recording anything.
func (s *ClockService) Check(ctx context.Context, employeeID string, observer domain.Coordinate) (domain.ProximityState, domain.Target, error) {
	target, err := s.targets.ResolveTarget(ctx, employeeID)
	if err != nil {
		return domain.ProximityState{}, domain.Target{}, err
	}

	st, err := Evaluate(observer, target.Coordinate, target.RadiusMeters)
	if err != nil {
		return domain.ProximityState{}, domain.Target{}, err
	}
	return st, target, nil
}

// Record stores a clock entry when observer is inside the establishment radius.
// Entries must alternate in/out, starting with in.
func (s *ClockService) Record(ctx context.Context, employeeID string, kind domain.ClockKind, observer domain.Coordinate) (*domain.ClockEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("kind %q: %w", kind, domain.ErrInvalidInput)
	}

	st, target, err := s.Check(ctx, employeeID, observer)
	if err != nil {
		return nil, err
	}
	if !st.Eligible {
		return nil, fmt.Errorf("%.0fm from establishment, radius %.0fm: %w", *st.DistanceMeters, target.RadiusMeters, domain.ErrNotEligible)
	}

	entry := &domain.ClockEntry{
		ID:              uuid.NewString(),
		EmployeeID:      employeeID,
		EstablishmentID: target.EstablishmentID,
		Kind:            kind,
		Location:        observer,
		DistanceMeters:  *st.DistanceMeters,
		RecordedAt:      s.now().UTC(),
	}
	err = s.repo.Append(ctx, entry, func(last *domain.ClockEntry) error {
		return checkSequence(last, kind)
	})
	switch {
	case errors.Is(err, domain.ErrInvalidSequence):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("save clock entry: %w", err)
	}

	event := &domain.ClockEvent{Entry: *entry, Timestamp: s.now().Unix()}
	if err := s.publisher.PublishClock(ctx, event); err != nil {
		log.Printf("publish clock entry %s: %v", entry.ID, err)
	}

	return entry, nil
}

func (s *ClockService) History(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClockEntry, error) {
	if query.End.Before(query.Start) {
		return nil, fmt.Errorf("end before start: %w", domain.ErrInvalidInput)
	}
	return s.repo.GetHistory(ctx, query)
}

func checkSequence(last *domain.ClockEntry, kind domain.ClockKind) error {
	if last == nil {
		if kind != domain.ClockIn {
			return fmt.Errorf("first entry must be %q: %w", domain.ClockIn, domain.ErrInvalidSequence)
		}
		return nil
	}
	if last.Kind == kind {
		return fmt.Errorf("already clocked %s: %w", kind, domain.ErrInvalidSequence)
	}
	return nil
}

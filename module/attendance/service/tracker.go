package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

// LocationSource pushes coordinates to onCoordinate until the returned
// unsubscribe func is called.
type LocationSource interface {
	Subscribe(onCoordinate func(domain.Coordinate)) (unsubscribe func(), err error)
}

// Session evaluates every coordinate a LocationSource pushes against a fixed target.
type Session struct {
	target       domain.Coordinate
	radiusMeters float64
	onUpdate     func(domain.ProximityState)

	// deliver serializes evaluation and onUpdate; mu guards the fields below.
	deliver sync.Mutex

	mu          sync.Mutex
	stopped     bool
	state       domain.SessionState
	last        domain.ProximityState
	unsubscribe func()
}

// ObserveStream subscribes to source and calls onUpdate once per received
// coordinate, in arrival order. Calls to onUpdate never overlap.
func ObserveStream(source LocationSource, target domain.Coordinate, radiusMeters float64, onUpdate func(domain.ProximityState)) (*Session, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("target %v: %w", target, domain.ErrInvalidInput)
	}
	if err := validateRadius(radiusMeters); err != nil {
		return nil, err
	}
	if onUpdate == nil {
		onUpdate = func(domain.ProximityState) {}
	}

	s := &Session{
		target:       target,
		radiusMeters: radiusMeters,
		onUpdate:     onUpdate,
		state:        domain.AwaitingFirstFix,
	}

	unsubscribe, err := source.Subscribe(s.handle)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w: %w", domain.ErrLocationUnavailable, err)
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	return s, nil
}

func (s *Session) handle(c domain.Coordinate) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	st, err := Evaluate(c, s.target, s.radiusMeters)
	if err != nil {
		log.Printf("proximity: dropping sample: %v", err)
		return
	}

	s.mu.Lock()
	s.state = domain.Tracking
	s.last = st
	s.mu.Unlock()

	s.onUpdate(st)
}

// State returns the session phase and the latest evaluation. It may be
// called from within onUpdate.
func (s *Session) State() (domain.SessionState, domain.ProximityState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.last
}

// Stop unsubscribes from the source and waits for an in-flight onUpdate.
// Once it returns no further onUpdate call is made. Stop must not be called
// from within onUpdate.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	unsubscribe := s.unsubscribe
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	// wait out a delivery that passed the stopped check before we set it
	s.deliver.Lock()
	s.deliver.Unlock()
}

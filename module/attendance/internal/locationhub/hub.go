// Package locationhub fans device coordinates out to proximity sessions,
// keyed by employee.
package locationhub

import (
	"sync"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

type listener struct {
	fn func(domain.Coordinate)
}

type Hub struct {
	mu        sync.RWMutex
	listeners map[string][]*listener
}

func New() *Hub {
	return &Hub{listeners: make(map[string][]*listener)}
}

// Publish delivers c synchronously to every current listener of employeeID,
// in subscription order. Samples for an employee nobody listens to are dropped.
func (h *Hub) Publish(employeeID string, c domain.Coordinate) {
	h.mu.RLock()
	subs := append([]*listener(nil), h.listeners[employeeID]...)
	h.mu.RUnlock()

	for _, l := range subs {
		l.fn(c)
	}
}

func (h *Hub) Subscribe(employeeID string, fn func(domain.Coordinate)) func() {
	l := &listener{fn: fn}

	h.mu.Lock()
	h.listeners[employeeID] = append(h.listeners[employeeID], l)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(employeeID, l) })
	}
}

func (h *Hub) remove(employeeID string, l *listener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.listeners[employeeID]
	filtered := make([]*listener, 0, len(subs))
	for _, existing := range subs {
		if existing != l {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) == 0 {
		delete(h.listeners, employeeID)
	} else {
		h.listeners[employeeID] = filtered
	}
}

// Listeners reports how many listeners employeeID currently has.
func (h *Hub) Listeners(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners[employeeID])
}

// Source returns a view of the hub scoped to one employee.
func (h *Hub) Source(employeeID string) *Source {
	return &Source{hub: h, employeeID: employeeID}
}

type Source struct {
	hub        *Hub
	employeeID string
}

func (s *Source) Subscribe(onCoordinate func(domain.Coordinate)) (func(), error) {
	return s.hub.Subscribe(s.employeeID, onCoordinate), nil
}

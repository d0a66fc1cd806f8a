package viewer

import (
	"sync"
	"time"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

// State is a point-in-time copy of the viewer state.
type State struct {
	Range      domain.DateRange
	Loading    bool
	Err        error
	Selection  *domain.Selection
	Generation uint64
	UpdatedAt  time.Time
}

// Ticket identifies one fetch. Only the ticket of the most recent Begin can
// be applied.
type Ticket struct {
	Generation uint64
	Range      domain.DateRange
}

// Store is the single owner of viewer state. Begin is the only writer of
// Range and Loading-on; Apply is the only writer of Selection, Err and
// Loading-off.
type Store struct {
	mu     sync.RWMutex
	state  State
	radius float64
}

// NewStore creates an empty store placing markers on a sphere of radius.
func NewStore(radius float64) *Store {
	if radius <= 0 {
		radius = domain.DefaultSunRadius
	}
	return &Store{radius: radius}
}

// Begin records a new request for r and returns its ticket. Any ticket
// issued earlier becomes stale.
func (s *Store) Begin(r domain.DateRange) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Generation++
	s.state.Range = r
	s.state.Loading = true
	s.state.Err = nil
	return Ticket{Generation: s.state.Generation, Range: r}
}

// Apply is the fetch-result transition. It returns false and changes nothing
// when t is stale. A failed fetch records the error and keeps the previous
// selection; a successful one replaces the selection wholesale. The returned
// state is the state right after the transition.
func (s *Store) Apply(t Ticket, fetchID string, records []domain.FlareRecord, fetchErr error) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Generation != s.state.Generation {
		return s.state, false
	}

	s.state.Loading = false
	s.state.UpdatedAt = domain.Now()
	if fetchErr != nil {
		s.state.Err = fetchErr
		return s.state, true
	}

	sel := domain.BuildSelection(fetchID, t.Range, records, s.radius)
	s.state.Selection = &sel
	s.state.Err = nil
	return s.state, true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Radius is the sphere radius markers are projected onto.
func (s *Store) Radius() float64 {
	return s.radius
}

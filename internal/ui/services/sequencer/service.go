package sequencer

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"querydeck/internal/domain"
)

// Sequencer stamps outgoing requests with increasing ids so that only the
// response to the newest one is ever shown. It does not abort anything; a
// superseded request simply stops being current.
type Sequencer struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	latest uint64
}

// New creates a sequencer. The first issued id is 1.
func New(clock clockwork.Clock) *Sequencer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Sequencer{clock: clock}
}

// Issue assigns the next id to snapshot and makes it the current request
func (s *Sequencer) Issue(snapshot domain.QueryState) domain.DispatchedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	return domain.DispatchedRequest{
		SequenceID: s.latest,
		Snapshot:   snapshot.Clone(),
		IssuedAt:   s.clock.Now(),
	}
}

// IsCurrent reports whether id belongs to the most recently issued request
func (s *Sequencer) IsCurrent(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id != 0 && id == s.latest
}

// Latest returns the id of the most recently issued request, 0 if none
func (s *Sequencer) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

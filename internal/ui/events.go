package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"querydeck/internal/eventbus"
)

// forwardedEvents are the bus events the status line reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventQueryDispatched,
	eventbus.EventResultApplied,
	eventbus.EventResultFailed,
	eventbus.EventError,
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
}

// EventForwarder buffers bus events for the UI. It can subscribe before the
// program exists; events queue up until Run attaches one.
type EventForwarder struct {
	mu     sync.Mutex
	closed bool
	ch     chan eventbus.DomainEvent
	unsubs []func()
	logger *zap.Logger
}

// NewEventForwarder subscribes to the bus
func NewEventForwarder(bus eventbus.EventBus, logger *zap.Logger) *EventForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &EventForwarder{
		ch:     make(chan eventbus.DomainEvent, 100),
		logger: logger.Named("forwarder"),
	}
	for _, t := range forwardedEvents {
		f.unsubs = append(f.unsubs, bus.Subscribe(t, f.forward))
	}
	return f
}

func (f *EventForwarder) forward(e eventbus.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- e:
	default:
		f.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
	}
}

// Run delivers queued events to send until Close. It blocks.
func (f *EventForwarder) Run(send func(tea.Msg)) {
	for e := range f.ch {
		send(EventMsg{Event: e})
	}
}

// Close unsubscribes and ends Run
func (f *EventForwarder) Close() {
	for _, unsub := range f.unsubs {
		unsub()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydeck/internal/eventbus"
)

func TestForwarderQueuesUntilRun(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	f := NewEventForwarder(bus, nil)
	bus.Publish(eventbus.ConfigLoadedEvent{Path: "/tmp/querydeck.toml"})
	bus.Publish(eventbus.ResultIgnoredEvent{Screen: "search"})
	bus.Publish(eventbus.ErrorEvent{Message: "boom"})

	got := make(chan tea.Msg, 10)
	done := make(chan struct{})
	go func() {
		f.Run(func(msg tea.Msg) { got <- msg })
		close(done)
	}()

	var events []eventbus.DomainEvent
	require.Eventually(t, func() bool {
		select {
		case msg := <-got:
			events = append(events, msg.(EventMsg).Event)
		default:
		}
		return len(events) == 2
	}, time.Second, time.Millisecond)

	assert.Equal(t, eventbus.ConfigLoadedEvent{Path: "/tmp/querydeck.toml"}, events[0])
	assert.Equal(t, eventbus.ErrorEvent{Message: "boom"}, events[1])

	f.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}

	// Publishing after Close is harmless
	bus.Publish(eventbus.ErrorEvent{Message: "late"})
	f.Close()
}

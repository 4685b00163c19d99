package handlers

import (
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"querydeck/internal/domain"
	"querydeck/internal/eventbus"
	"querydeck/internal/ui/state"
)

// SpinnerInterval is the frame time of the loading spinner
const SpinnerInterval = 80 * time.Millisecond

// TickMsg is a tick message for animations
type TickMsg time.Time

// Tick schedules the next spinner frame
func Tick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventHandler turns bus events into status bar updates for one screen
type EventHandler struct {
	state  *state.ScreenState
	screen string
}

// NewEventHandler creates a new event handler
func NewEventHandler(screenState *state.ScreenState, screen string) *EventHandler {
	return &EventHandler{
		state:  screenState,
		screen: screen,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.QueryDispatchedEvent:
		if e.Screen != h.screen {
			return nil
		}
		// The previous result message no longer describes what is on screen
		h.state.StatusMessage = ""

	case eventbus.ResultAppliedEvent:
		if e.Screen != h.screen {
			return nil
		}
		h.state.StatusMessage = fmt.Sprintf("Loaded %s in %s", plural(e.TotalCount, "result"), e.Latency.Round(time.Millisecond))

	case eventbus.ResultFailedEvent:
		if e.Screen != h.screen {
			return nil
		}
		if e.Kind.Category == domain.ServerError && e.Kind.StatusCode == http.StatusUnauthorized {
			h.state.StatusMessage = "Unauthorized: set api.token in the config file or QUERYDECK_API_TOKEN"
		} else {
			h.state.StatusMessage = fmt.Sprintf("Request failed (%s)", e.Kind.Category)
		}

	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
		if e.Err != nil {
			h.state.StatusMessage = fmt.Sprintf("Error: %s: %v", e.Message, e.Err)
		}

	case eventbus.ConfigLoadedEvent:
		if e.Path == "" {
			h.state.StatusMessage = fmt.Sprintf("Using default configuration (%s)", e.BaseURL)
		} else {
			h.state.StatusMessage = fmt.Sprintf("Loaded %s (%s)", e.Path, e.BaseURL)
		}

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = fmt.Sprintf("Configuration saved to %s", e.Path)
	}

	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

package ui

import (
	"querydeck/internal/domain"
	"querydeck/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// viewModelMsg carries a coordinator view model into the update loop
type viewModelMsg[T any] struct {
	vm domain.ViewModel[T]
}

// pagerMsg is returned once the pager closed
type pagerMsg struct {
	title string
	err   error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

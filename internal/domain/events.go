package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryDispatched     EventType = "QueryDispatched"
	EventResultApplied       EventType = "ResultApplied"
	EventResultIgnored       EventType = "ResultIgnored"
	EventResultFailed        EventType = "ResultFailed"
	EventCoordinatorDisposed EventType = "CoordinatorDisposed"
	EventError               EventType = "Error"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryDispatchedEvent is emitted when a list screen issues a fetch
type QueryDispatchedEvent struct {
	Screen     string
	SequenceID uint64
	Query      QueryState
}

func (e QueryDispatchedEvent) Type() EventType { return EventQueryDispatched }

// ResultAppliedEvent is emitted when the current request's page is shown
type ResultAppliedEvent struct {
	Screen     string
	SequenceID uint64
	TotalCount int
	Latency    time.Duration
}

func (e ResultAppliedEvent) Type() EventType { return EventResultApplied }

// ResultIgnoredEvent is emitted when a superseded response is dropped
type ResultIgnoredEvent struct {
	Screen     string
	SequenceID uint64
	Latest     uint64
}

func (e ResultIgnoredEvent) Type() EventType { return EventResultIgnored }

// ResultFailedEvent is emitted when the current request fails
type ResultFailedEvent struct {
	Screen     string
	SequenceID uint64
	Kind       ErrorKind
	Latency    time.Duration
}

func (e ResultFailedEvent) Type() EventType { return EventResultFailed }

// CoordinatorDisposedEvent is emitted when a list screen is torn down
type CoordinatorDisposedEvent struct {
	Screen string
}

func (e CoordinatorDisposedEvent) Type() EventType { return EventCoordinatorDisposed }

// ErrorEvent is emitted when an error occurs outside a fetch
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string // empty when defaults were used
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

package coordinator

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"querydeck/internal/eventbus"
	"querydeck/internal/ui/services/filter"
)

type options struct {
	name     string
	clock    clockwork.Clock
	delay    time.Duration
	radius   int
	defaults filter.Defaults
	bus      eventbus.EventBus
	logger   *zap.Logger
}

// Option configures a Coordinator
type Option func(*options)

// WithName labels log lines and events with the screen name
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithDebounce sets the quiet period for free-text edits
func WithDebounce(delay time.Duration) Option {
	return func(o *options) { o.delay = delay }
}

// WithPageRadius sets how many neighbouring pages the pagination control lists
func WithPageRadius(radius int) Option {
	return func(o *options) { o.radius = radius }
}

// WithDefaults sets the sort and page size a screen starts from and clears back to
func WithDefaults(d filter.Defaults) Option {
	return func(o *options) { o.defaults = d }
}

// WithEventBus publishes lifecycle events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"querydeck/internal/domain"
	"querydeck/internal/ui/services/aggregate"
	"querydeck/internal/ui/services/debounce"
	"querydeck/internal/ui/services/filter"
	"querydeck/internal/ui/services/pagination"
	"querydeck/internal/ui/services/sequencer"
)

// ErrDisposed is returned for edits submitted after Close
var ErrDisposed = errors.New("coordinator disposed")

// Fetcher loads one page of results for a serialized query
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q filter.SerializedQuery) (domain.ResultPage[T], error)
}

// FetchFunc adapts a plain function to Fetcher
type FetchFunc[T any] func(ctx context.Context, q filter.SerializedQuery) (domain.ResultPage[T], error)

func (f FetchFunc[T]) Fetch(ctx context.Context, q filter.SerializedQuery) (domain.ResultPage[T], error) {
	return f(ctx, q)
}

// Listener receives a copy of the view model after it changed
type Listener[T any] func(domain.ViewModel[T])

type listener[T any] struct {
	id uint64
	fn Listener[T]
}

// Coordinator turns a stream of edits on one list screen into an ordered
// sequence of fetches and keeps the view model consistent with the newest one.
//
// All state lives behind mu. The debouncer shares mu, so delayed dispatches run
// serialized with Submit, and every accept/ignore decision is made under it.
type Coordinator[T any] struct {
	mu sync.Mutex

	opts      options
	fetcher   Fetcher[T]
	logger    *zap.Logger
	debouncer *debounce.Debouncer
	sequencer *sequencer.Sequencer
	results   *aggregate.Aggregator[T]

	state    domain.QueryState
	status   domain.SearchStatus
	inflight map[uint64]context.CancelFunc

	listeners  []listener[T]
	listenerID uint64
	changed    chan struct{}
	done       chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a coordinator for one screen. category names the facet each
// item is counted under and may be nil.
func New[T any](fetcher Fetcher[T], category aggregate.CategoryFunc[T], opts ...Option) *Coordinator[T] {
	o := options{
		name:   "list",
		radius: pagination.DefaultRadius,
		delay:  debounce.DefaultDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator[T]{
		opts:      o,
		fetcher:   fetcher,
		logger:    o.logger.Named("coordinator").With(zap.String("screen", o.name)),
		sequencer: sequencer.New(o.clock),
		state:     filter.Initial(o.defaults),
		status:    domain.StatusIdle,
		inflight:  make(map[uint64]context.CancelFunc),
		changed:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.debouncer = debounce.New(o.clock, o.delay, &c.mu)
	c.results = aggregate.New[T](c.sequencer, category, o.radius)

	go c.notifyLoop()
	return c
}

// Name returns the screen name the coordinator was created with
func (c *Coordinator[T]) Name() string {
	return c.opts.name
}

// Start issues the initial load. Calling it again once something has been
// dispatched does nothing.
func (c *Coordinator[T]) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != domain.StatusIdle || c.sequencer.Latest() != 0 {
		return
	}
	c.debouncer.Schedule(debounce.Immediate, c.dispatchLocked)
}

// Submit applies an edit. Free-text edits are sent after the debounce delay;
// everything else is sent right away and cancels a pending free-text send.
func (c *Coordinator[T]) Submit(edit filter.Edit) error {
	return c.SubmitAll(edit)
}

// SubmitAll applies edits in order as one change and sends a single request.
// If any edit is refused the state is left as it was. The batch is delayed
// only when every edit in it is a free-text edit.
func (c *Coordinator[T]) SubmitAll(edits ...filter.Edit) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == domain.StatusDisposed {
		return ErrDisposed
	}
	if len(edits) == 0 {
		return nil
	}

	next := c.state
	trigger := debounce.Delayed
	for _, edit := range edits {
		var err error
		next, err = filter.Compose(next, edit, c.opts.defaults)
		if err != nil {
			c.results.Reject(domain.ClassifyError(err))
			c.logger.Warn("edit rejected", zap.Error(err))
			c.signal()
			return err
		}
		if _, ok := edit.(filter.TextChanged); !ok {
			trigger = debounce.Immediate
		}
	}
	c.state = next

	c.debouncer.Schedule(trigger, c.dispatchLocked)
	c.signal()
	return nil
}

// Flush sends a pending free-text edit now instead of waiting for the delay
func (c *Coordinator[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debouncer.Pending() {
		c.debouncer.Schedule(debounce.Immediate, c.dispatchLocked)
	}
}

// Refresh re-sends the current query, e.g. after the underlying data changed
func (c *Coordinator[T]) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == domain.StatusDisposed {
		return ErrDisposed
	}
	c.debouncer.Schedule(debounce.Immediate, c.dispatchLocked)
	return nil
}

// Snapshot returns a copy of the current view model
func (c *Coordinator[T]) Snapshot() domain.ViewModel[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Query returns the composed query state
func (c *Coordinator[T]) Query() domain.QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// OnChange registers fn to be called with a fresh view model after changes.
// Calls happen on a single goroutine, outside the coordinator's lock, and
// bursts of changes may be delivered as one call carrying the latest state.
func (c *Coordinator[T]) OnChange(fn Listener[T]) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listenerID++
	id := c.listenerID
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				break
			}
		}
	}
}

// Close tears the screen down: pending timers are cancelled, outstanding
// fetches are aborted and any response that still arrives is ignored.
func (c *Coordinator[T]) Close() {
	c.mu.Lock()
	if c.status == domain.StatusDisposed {
		c.mu.Unlock()
		return
	}
	c.status = domain.StatusDisposed
	c.debouncer.Close()
	for id, cancel := range c.inflight {
		cancel()
		delete(c.inflight, id)
	}
	c.cancel()
	c.publish(domain.CoordinatorDisposedEvent{Screen: c.opts.name})
	c.logger.Debug("disposed")
	c.mu.Unlock()

	close(c.done)
}

// Wait blocks until every fetch goroutine has returned
func (c *Coordinator[T]) Wait() {
	c.wg.Wait()
}

// dispatchLocked issues the current state as a new request. Runs with mu held,
// either from Submit or from the debouncer's timer.
func (c *Coordinator[T]) dispatchLocked() {
	if c.status == domain.StatusDisposed {
		return
	}

	req := c.sequencer.Issue(c.state)
	c.results.BeginLoading()
	c.status = domain.StatusSearching

	// Only req can be applied from here on, so older transports may stop.
	for id, cancel := range c.inflight {
		cancel()
		delete(c.inflight, id)
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight[req.SequenceID] = cancel

	c.publish(domain.QueryDispatchedEvent{Screen: c.opts.name, SequenceID: req.SequenceID, Query: req.Snapshot})
	c.logger.Debug("dispatch",
		zap.Uint64("seq", req.SequenceID),
		zap.String("text", req.Snapshot.FreeText),
		zap.Any("filters", req.Snapshot.Filters),
		zap.String("sort", req.Snapshot.SortBy),
		zap.Int("page", req.Snapshot.Page))

	c.wg.Add(1)
	go c.run(ctx, req)
	c.signal()
}

func (c *Coordinator[T]) run(ctx context.Context, req domain.DispatchedRequest) {
	defer c.wg.Done()
	resp := c.fetch(ctx, req)
	c.complete(req, resp)
}

// fetch calls the fetcher and converts every way it can fail into a Response
func (c *Coordinator[T]) fetch(ctx context.Context, req domain.DispatchedRequest) (resp aggregate.Response[T]) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("fetcher panic", zap.Uint64("seq", req.SequenceID), zap.Any("panic", r))
			resp = aggregate.Failure[T](domain.ErrorKind{
				Category: domain.NetworkError,
				Message:  fmt.Sprintf("fetch failed: %v", r),
			})
		}
	}()

	page, err := c.fetcher.Fetch(ctx, filter.Serialize(req.Snapshot))
	if err != nil {
		return aggregate.Failure[T](domain.ClassifyError(err))
	}
	return aggregate.Success(page.Normalize(req.Snapshot))
}

func (c *Coordinator[T]) complete(req domain.DispatchedRequest, resp aggregate.Response[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cancel, ok := c.inflight[req.SequenceID]; ok {
		cancel()
		delete(c.inflight, req.SequenceID)
	}
	if c.status == domain.StatusDisposed {
		return
	}

	latency := c.opts.clock.Since(req.IssuedAt)
	log := c.logger.With(zap.Uint64("seq", req.SequenceID), zap.Duration("latency", latency))

	switch c.results.Accept(req.SequenceID, resp) {
	case aggregate.Applied:
		c.status = domain.StatusSettled
		c.publish(domain.ResultAppliedEvent{
			Screen:     c.opts.name,
			SequenceID: req.SequenceID,
			TotalCount: resp.Page.TotalCount,
			Latency:    latency,
		})
		log.Debug("applied", zap.Int("total", resp.Page.TotalCount))
	case aggregate.Failed:
		c.status = domain.StatusSettled
		c.publish(domain.ResultFailedEvent{
			Screen:     c.opts.name,
			SequenceID: req.SequenceID,
			Kind:       *resp.Failure,
			Latency:    latency,
		})
		log.Warn("request failed", zap.Stringer("category", resp.Failure.Category), zap.String("message", resp.Failure.Message))
	case aggregate.Ignored:
		latest := c.sequencer.Latest()
		c.publish(domain.ResultIgnoredEvent{Screen: c.opts.name, SequenceID: req.SequenceID, Latest: latest})
		log.Debug("ignored stale response", zap.Uint64("latest", latest))
		return
	}
	c.signal()
}

func (c *Coordinator[T]) snapshotLocked() domain.ViewModel[T] {
	vm := c.results.ViewModel()
	vm.Query = c.state.Clone()
	vm.Status = c.status
	return vm
}

func (c *Coordinator[T]) publish(e domain.DomainEvent) {
	if c.opts.bus != nil {
		c.opts.bus.Publish(e)
	}
}

// signal wakes the notifier. It never blocks, so it is safe under mu.
func (c *Coordinator[T]) signal() {
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

func (c *Coordinator[T]) notifyLoop() {
	for {
		select {
		case <-c.changed:
			c.mu.Lock()
			vm := c.snapshotLocked()
			fns := make([]Listener[T], len(c.listeners))
			for i, l := range c.listeners {
				fns[i] = l.fn
			}
			c.mu.Unlock()

			for _, fn := range fns {
				fn(vm.Clone())
			}
		case <-c.done:
			return
		}
	}
}

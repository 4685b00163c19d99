// Package metrics exposes the coordinator's lifecycle events as prometheus
// metrics. It listens on the event bus, so the coordinator never depends on it.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"querydeck/internal/eventbus"
)

const namespace = "querydeck"

// Recorder owns a private registry with the query metrics
type Recorder struct {
	registry *prometheus.Registry

	dispatched *prometheus.CounterVec
	outcomes   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	disposed   *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.dispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_dispatched_total",
		Help:      "Requests issued by list screens.",
	}, []string{"screen"})

	r.outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_responses_total",
		Help:      "Responses by outcome: applied, ignored (stale) or failed.",
	}, []string{"screen", "outcome"})

	r.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_failures_total",
		Help:      "Applied failures by error category.",
	}, []string{"screen", "category"})

	r.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_latency_seconds",
		Help:      "Time from dispatch to an applied or failed response.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"screen", "outcome"})

	r.disposed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screens_closed_total",
		Help:      "List screens torn down.",
	}, []string{"screen"})

	r.registry.MustRegister(r.dispatched, r.outcomes, r.failures, r.latency, r.disposed)
	return r
}

// Registry returns the registry backing the recorder
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Attach subscribes the recorder to coordinator events. The returned func
// unsubscribes.
func (r *Recorder) Attach(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventQueryDispatched, r.handle),
		bus.Subscribe(eventbus.EventResultApplied, r.handle),
		bus.Subscribe(eventbus.EventResultIgnored, r.handle),
		bus.Subscribe(eventbus.EventResultFailed, r.handle),
		bus.Subscribe(eventbus.EventCoordinatorDisposed, r.handle),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (r *Recorder) handle(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.QueryDispatchedEvent:
		r.dispatched.WithLabelValues(e.Screen).Inc()
	case eventbus.ResultAppliedEvent:
		r.outcomes.WithLabelValues(e.Screen, "applied").Inc()
		r.latency.WithLabelValues(e.Screen, "applied").Observe(e.Latency.Seconds())
	case eventbus.ResultIgnoredEvent:
		r.outcomes.WithLabelValues(e.Screen, "ignored").Inc()
	case eventbus.ResultFailedEvent:
		r.outcomes.WithLabelValues(e.Screen, "failed").Inc()
		r.failures.WithLabelValues(e.Screen, e.Kind.Category.String()).Inc()
		r.latency.WithLabelValues(e.Screen, "failed").Observe(e.Latency.Seconds())
	case eventbus.CoordinatorDisposedEvent:
		r.disposed.WithLabelValues(e.Screen).Inc()
	}
}

// Handler serves the registry in the prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

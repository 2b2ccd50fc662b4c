package collection

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jangler/equave/pitch"
)

const defaultRegistryCapacity = 256

// Registry shares Addressed collections between callers that root
// content-equal collections at the same reference frequency. Entries are
// keyed by content, never by identity, and the least recently used entry
// is dropped once the registry is full.
type Registry struct {
	cache   *lru[uint64, registryEntry]
	flight  singleflight.Group
	log     *zap.Logger
	metrics registryMetrics
}

type registryEntry struct {
	key       string
	addressed *Addressed
}

type registryMetrics struct {
	hits, misses, evictions prometheus.Counter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for evictions and hash collisions.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// WithMetrics registers hit, miss and eviction counters with reg.
func WithMetrics(reg prometheus.Registerer) RegistryOption {
	return func(r *Registry) {
		r.metrics = newRegistryMetrics(reg)
	}
}

func newRegistryMetrics(reg prometheus.Registerer) registryMetrics {
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{
			Namespace: "equave",
			Subsystem: "registry",
			Name:      name,
			Help:      help,
		})
	}
	return registryMetrics{
		hits:      counter("hits_total", "Root lookups served from the registry."),
		misses:    counter("misses_total", "Root lookups that built a new addressed collection."),
		evictions: counter("evictions_total", "Addressed collections dropped at capacity."),
	}
}

// NewRegistry returns a registry holding at most capacity addressed
// collections. A non-positive capacity selects a default.
func NewRegistry(capacity int, opts ...RegistryOption) *Registry {
	r := &Registry{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics.hits == nil {
		// counted but not registered
		r.metrics = newRegistryMetrics(nil)
	}
	r.cache = newLRU(capacity, func(_ uint64, e registryEntry) {
		r.metrics.evictions.Inc()
		r.log.Debug("evicted addressed collection", zap.String("key", e.key))
	})
	return r
}

// Root returns the addressed collection for c at ref, building it on the
// first request. Concurrent first requests for the same key share one
// build.
func (r *Registry) Root(c Collection, ref pitch.Pitch) *Addressed {
	key := c.fingerprint() + "@" + strconv.FormatFloat(ref.Freq(), 'g', -1, 64)
	sum := xxhash.Sum64String(key)
	if a, ok := r.lookup(sum, key); ok {
		r.metrics.hits.Inc()
		return a
	}

	v, _, _ := r.flight.Do(key, func() (any, error) {
		if a, ok := r.lookup(sum, key); ok {
			r.metrics.hits.Inc()
			return a, nil
		}
		r.metrics.misses.Inc()
		a := newAddressed(c, ref)
		r.cache.set(sum, registryEntry{key: key, addressed: a})
		return a, nil
	})
	return v.(*Addressed)
}

// return the cached collection for key, treating a hash collision as a miss
func (r *Registry) lookup(sum uint64, key string) (*Addressed, bool) {
	e, ok := r.cache.get(sum)
	if !ok {
		return nil, false
	}
	if e.key != key {
		r.log.Debug("registry hash collision",
			zap.Uint64("hash", sum), zap.String("cached", e.key), zap.String("key", key))
		return nil, false
	}
	return e.addressed, true
}

// Len returns the number of cached addressed collections.
func (r *Registry) Len() int {
	return r.cache.len()
}

// Purge drops every cached addressed collection.
func (r *Registry) Purge() {
	r.cache.purge()
}

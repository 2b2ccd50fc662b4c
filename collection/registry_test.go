package collection

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

func TestRootAddressed(t *testing.T) {
	c := mustScale(t, just)
	a := c.Root(pitch.FromFreq(262))
	assert.Same(t, Collection(c), a.Source())
	assert.Equal(t, 7, a.Len())
	assert.InDelta(t, 262.0, a.Reference().Freq(), 1e-9)

	p, err := a.At(11)
	require.NoError(t, err)
	assert.InDelta(t, 262*3.0, p.Freq(), 1e-9)
	partial, ok := p.Partial()
	require.True(t, ok)
	assert.Equal(t, "3/1", partial.String())

	again, err := a.At(11)
	require.NoError(t, err)
	assert.True(t, again.Equal(p))

	ps, err := a.Range(-1, 2)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.InDelta(t, 262*15/16.0, ps[0].Freq(), 1e-9)

	_, err = a.Range(2, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// every call gives a fresh resolver
	assert.NotSame(t, a, c.Root(pitch.FromFreq(262)))
}

func TestRootCents(t *testing.T) {
	c := mustRelative(t, interval.MustParseAll("0.0", "700.0"))
	p, err := c.Root(pitch.FromFreq(440)).At(1)
	require.NoError(t, err)
	assert.InDelta(t, 659.255, p.Freq(), 1e-3)
}

func TestRootAbsolute(t *testing.T) {
	a, err := FromFreqs([]float64{220, 330})
	require.NoError(t, err)
	p, err := a.Root(pitch.FromFreq(110)).At(1)
	require.NoError(t, err)
	assert.InDelta(t, 330.0, p.Freq(), 1e-9)
	partial, ok := p.Partial()
	require.True(t, ok)
	assert.InDelta(t, 1901.955, partial.Cents(), 1e-3)
}

func TestRegistryShares(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(4, WithLogger(zaptest.NewLogger(t)), WithMetrics(reg))
	c4 := pitch.FromFreq(261.6)

	a := r.Root(mustScale(t, just), c4)
	// content-equal collections share an entry
	b := r.Root(mustScale(t, just), c4)
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())

	assert.NotSame(t, a, r.Root(mustScale(t, just), pitch.FromFreq(440)))
	assert.NotSame(t, a, r.Root(mustRelative(t, just), c4))
	assert.NotSame(t, a, r.Root(mustScale(t, just, WithCyclic(false)), c4))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.hits))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.metrics.misses))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.metrics.evictions))

	n, err := testutil.GatherAndCount(reg, "equave_registry_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	r.Purge()
	assert.Equal(t, 0, r.Len())
	assert.NotSame(t, a, r.Root(mustScale(t, just), c4))
}

func TestRegistryEvicts(t *testing.T) {
	r := NewRegistry(2)
	s := mustScale(t, just)
	a := r.Root(s, pitch.FromFreq(100))
	r.Root(s, pitch.FromFreq(200))
	assert.Same(t, a, r.Root(s, pitch.FromFreq(100)))
	r.Root(s, pitch.FromFreq(300))

	// 200 Hz was least recently used
	assert.Equal(t, 2, r.Len())
	assert.Same(t, a, r.Root(s, pitch.FromFreq(100)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.evictions))
}

func TestRegistryCollision(t *testing.T) {
	r := NewRegistry(0, WithLogger(zaptest.NewLogger(t)))
	s := mustScale(t, just)
	ref := pitch.FromFreq(440)
	key := s.fingerprint() + "@440"
	impostor := newAddressed(s, pitch.FromFreq(1))
	r.cache.set(xxhash.Sum64String(key), registryEntry{key: "something else", addressed: impostor})

	a := r.Root(s, ref)
	assert.NotSame(t, impostor, a)
	assert.InDelta(t, 440.0, a.Reference().Freq(), 1e-9)
	assert.Same(t, a, r.Root(s, ref))
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry(8)
	s := mustScale(t, just)
	got := make([]*Addressed, 32)
	var g errgroup.Group
	for i := range got {
		i := i
		g.Go(func() error {
			got[i] = r.Root(s, pitch.FromFreq(440))
			_, err := got[i].At(i)
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, a := range got[1:] {
		assert.Same(t, got[0], a)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.misses))
}

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangler/equave/interval"
)

func TestScaleSetIdempotent(t *testing.T) {
	s := mustScale(t, just)
	u, err := s.Union(s)
	require.NoError(t, err)
	assert.True(t, u.Equal(s))
	i, err := s.Intersection(s)
	require.NoError(t, err)
	assert.True(t, i.Equal(s))
	d, err := s.SymmetricDifference(s)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestScaleSetOps(t *testing.T) {
	a := mustScale(t, interval.MustParseAll("1/1", "9/8", "5/4"))
	b := mustScale(t, interval.MustParseAll("1/1", "5/4", "3/2"))

	u, err := a.Union(b)
	require.NoError(t, err)
	requireDegrees(t, []string{"1/1", "9/8", "5/4", "3/2"}, u.Relative)

	i, err := a.Intersection(b)
	require.NoError(t, err)
	requireDegrees(t, []string{"1/1", "5/4"}, i.Relative)

	d, err := a.SymmetricDifference(b)
	require.NoError(t, err)
	requireDegrees(t, []string{"1/1", "9/8", "3/2"}, d.Relative)
}

func TestSetOpsMixedKinds(t *testing.T) {
	a := mustScale(t, interval.MustParseAll("1/1", "5/4", "3/2"))
	b := mustScale(t, interval.MustParseAll("0.0", "386.3137138648348", "500.0"))

	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, interval.Cents, u.Kind())
	assert.Equal(t, interval.Cents, u.Equave().Kind())
	assert.Equal(t, 4, u.Len())

	i, err := b.Intersection(a)
	require.NoError(t, err)
	assert.Equal(t, interval.Cents, i.Kind())
	assert.Equal(t, 2, i.Len())

	// nothing in common but still cents
	x := mustRelative(t, interval.MustParseAll("9/8"))
	y := mustRelative(t, interval.MustParseAll("100.0"))
	r, err := x.Intersection(y)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, interval.Cents, r.Kind())
}

func TestChordSetOps(t *testing.T) {
	a := mustChord(t, interval.MustParseAll("5/4", "3/2"))
	b := mustChord(t, interval.MustParseAll("3/2", "7/4"))
	u, err := a.Union(b)
	require.NoError(t, err)
	requireDegrees(t, []string{"5/4", "3/2", "7/4"}, u.Relative)
	d, err := a.SymmetricDifference(b)
	require.NoError(t, err)
	requireDegrees(t, []string{"5/4", "7/4"}, d.Relative)
}

func TestRelativeSetOpsKeepLeftOptions(t *testing.T) {
	tritave := interval.MustParseAll("3/1")[0]
	a := mustRelative(t, interval.MustParseAll("1/1", "5/3"), WithEquave(tritave), WithCyclic(false))
	b := mustRelative(t, interval.MustParseAll("9/7"))
	u, err := a.Union(b)
	require.NoError(t, err)
	assert.True(t, u.Equave().Equal(tritave))
	assert.False(t, u.Cyclic())
	requireDegrees(t, []string{"1/1", "9/7", "5/3"}, u)
}

func TestCombine(t *testing.T) {
	s := mustScale(t, just)
	c, err := Combine(Union, s, s)
	require.NoError(t, err)
	require.IsType(t, &Scale{}, c)
	assert.True(t, c.(*Scale).Equal(s))

	ch := mustChord(t, triad)
	c, err = Combine(Intersection, ch, ch)
	require.NoError(t, err)
	require.IsType(t, &Chord{}, c)

	r := mustRelative(t, triad)
	c, err = Combine(SymmetricDifference, r, r)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	abs, err := FromFreqs([]float64{440})
	require.NoError(t, err)
	for _, pair := range [][2]Collection{{s, ch}, {ch, r}, {r, s}, {abs, abs}} {
		c, err = Combine(Union, pair[0], pair[1])
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Nil(t, c)
	}
}

func TestSetOpString(t *testing.T) {
	assert.Equal(t, "union", Union.String())
	assert.Equal(t, "symmetric difference", SymmetricDifference.String())
	assert.Equal(t, "SetOp(9)", SetOp(9).String())
}

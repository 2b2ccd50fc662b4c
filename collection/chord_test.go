package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangler/equave/interval"
)

func mustChord(t *testing.T, degrees []interval.Value, opts ...Option) *Chord {
	t.Helper()
	c, err := NewChord(degrees, opts...)
	require.NoError(t, err)
	return c
}

func TestChordUnanchored(t *testing.T) {
	c := mustChord(t, interval.MustParseAll("3/2", "5/4", "2/1"))
	requireDegrees(t, []string{"5/4", "3/2", "2/1"}, c.Relative)
}

func TestChordInversion(t *testing.T) {
	c := mustChord(t, triad)

	inv, err := c.Inversion(0)
	require.NoError(t, err)
	assert.Same(t, c, inv)

	inv, err = c.Inversion(1)
	require.NoError(t, err)
	v, err := inv.At(0)
	require.NoError(t, err)
	assert.True(t, v.IsIdentity())
	requireDegrees(t, []string{"1/1", "6/5", "8/5"}, inv.Relative)

	inv, err = c.Inversion(2)
	require.NoError(t, err)
	requireDegrees(t, []string{"1/1", "4/3", "5/3"}, inv.Relative)

	again, err := c.Inversion(-1)
	require.NoError(t, err)
	assert.Same(t, inv, again)

	_, err = mustChord(t, nil).Inversion(1)
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestChordRetrogradeInversion(t *testing.T) {
	c := mustChord(t, interval.MustParseAll("1/1", "5/4", "3/2", "7/4"))
	ri, err := c.RetrogradeInversion()
	require.NoError(t, err)
	requireDegrees(t, []string{"1/1", "7/6", "7/5", "7/4"}, ri.Relative)

	back, err := ri.RetrogradeInversion()
	require.NoError(t, err)
	assert.True(t, back.Equal(c))

	ri, err = mustChord(t, interval.MustParseAll("5/4", "3/2", "15/8")).RetrogradeInversion()
	require.NoError(t, err)
	requireDegrees(t, []string{"5/4", "25/16", "15/8"}, ri.Relative)

	_, err = mustChord(t, nil).RetrogradeInversion()
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

package collection

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// Chord is a relative collection of simultaneous degrees. Unlike a Scale
// it need not contain the unison, and it may hold degrees at or beyond
// the equave.
type Chord struct {
	*Relative

	inversions sync.Map // normalized inversion number -> *Chord
}

// NewChord returns a chord of the given degrees, deduplicated and sorted.
func NewChord(degrees []interval.Value, opts ...Option) (*Chord, error) {
	o := newOptions(opts)
	s, err := normalize(degrees, o, false)
	if err != nil {
		return nil, err
	}
	return &Chord{Relative: newRelative(s, o)}, nil
}

// ChordFromIntervals returns a chord stacked from the unison by steps.
func ChordFromIntervals(steps []interval.Value, opts ...Option) (*Chord, error) {
	return NewChord(accumulate(steps), opts...)
}

// Inversion returns the chord voiced from degree k mod n upward, the lower
// degrees raised by an equave and everything measured from the new bass.
// Inversion 0 is the chord itself.
func (c *Chord) Inversion(k int) (*Chord, error) {
	n := c.Len()
	if n == 0 {
		return nil, fmt.Errorf("inversion %d: %w", k, ErrEmptyCollection)
	}
	_, k = floorDivMod(k, n)
	if k == 0 {
		return c, nil
	}
	if inv, ok := c.inversions.Load(k); ok {
		return inv.(*Chord), nil
	}
	o := c.options()
	s, err := normalize(rotate(&c.store, k), o, false)
	if err != nil {
		return nil, fmt.Errorf("inversion %d: %w", k, err)
	}
	stored, _ := c.inversions.LoadOrStore(k, &Chord{Relative: newRelative(s, o)})
	return stored.(*Chord), nil
}

// RetrogradeInversion restacks the chord's adjacent intervals in reverse
// order on its lowest degree.
func (c *Chord) RetrogradeInversion() (*Chord, error) {
	if c.Len() == 0 {
		return nil, fmt.Errorf("retrograde inversion: %w", ErrEmptyCollection)
	}
	steps := c.Intervals()
	slices.Reverse(steps)
	degrees := make([]interval.Value, 0, len(steps)+1)
	acc := c.degrees[0]
	degrees = append(degrees, acc)
	for _, step := range steps {
		acc = acc.Compose(step)
		degrees = append(degrees, acc)
	}
	s, err := normalize(degrees, c.options(), false)
	if err != nil {
		return nil, fmt.Errorf("retrograde inversion: %w", err)
	}
	return &Chord{Relative: newRelative(s, c.options())}, nil
}

// WithReference returns a copy of c bound to reference pitch p.
func (c *Chord) WithReference(p pitch.Pitch) *Chord {
	return &Chord{Relative: c.Relative.WithReference(p)}
}

// Equal reports whether both chords hold the same degrees and equave.
func (c *Chord) Equal(other *Chord) bool {
	return c.Relative.Equal(other.Relative)
}

// Root returns a new Addressed collection resolving c against ref.
func (c *Chord) Root(ref pitch.Pitch) *Addressed {
	return newAddressed(c, ref)
}

func (c *Chord) fingerprint() string {
	return "chord|" + c.store.fingerprint()
}

func (c *Chord) combine(op SetOp, other *Chord) (*Chord, error) {
	r, err := combineRelative(op, c.Relative, other.Relative, false)
	if err != nil {
		return nil, err
	}
	return &Chord{Relative: r}, nil
}

// Union returns a chord of the degrees in either chord.
func (c *Chord) Union(other *Chord) (*Chord, error) {
	return c.combine(Union, other)
}

// Intersection returns a chord of the degrees in both chords.
func (c *Chord) Intersection(other *Chord) (*Chord, error) {
	return c.combine(Intersection, other)
}

// SymmetricDifference returns a chord of the degrees in exactly one chord.
func (c *Chord) SymmetricDifference(other *Chord) (*Chord, error) {
	return c.combine(SymmetricDifference, other)
}

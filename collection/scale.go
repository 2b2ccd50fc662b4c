package collection

import (
	"fmt"
	"sync"

	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// Scale is a relative collection anchored at the unison: degree 0 is
// always 1/1 (or 0 cents) and the equave is never stored as a degree.
type Scale struct {
	*Relative

	modes sync.Map // normalized mode number -> *Scale
}

// NewScale returns a scale of the given degrees, inserting the unison if
// it is missing and dropping the equave. Degrees must lie in
// [unison, equave]. An empty degree list gives an empty scale.
func NewScale(degrees []interval.Value, opts ...Option) (*Scale, error) {
	o := newOptions(opts)
	s, err := normalize(degrees, o, true)
	if err != nil {
		return nil, err
	}
	return &Scale{Relative: newRelative(s, o)}, nil
}

// ScaleFromIntervals returns a scale whose degrees are the running
// composition of steps from the unison.
func ScaleFromIntervals(steps []interval.Value, opts ...Option) (*Scale, error) {
	return NewScale(accumulate(steps), opts...)
}

// Mode returns the scale rotated to start on degree k mod n, with every
// degree measured from the new tonic. Mode 0 is the scale itself.
func (s *Scale) Mode(k int) (*Scale, error) {
	n := s.Len()
	if n == 0 {
		return nil, fmt.Errorf("mode %d: %w", k, ErrEmptyCollection)
	}
	_, k = floorDivMod(k, n)
	if k == 0 {
		return s, nil
	}
	if m, ok := s.modes.Load(k); ok {
		return m.(*Scale), nil
	}
	o := s.options()
	rs, err := normalize(rotate(&s.store, k), o, true)
	if err != nil {
		return nil, fmt.Errorf("mode %d: %w", k, err)
	}
	stored, _ := s.modes.LoadOrStore(k, &Scale{Relative: newRelative(rs, o)})
	return stored.(*Scale), nil
}

// return the degrees from k onward, measured from degree k; degrees that
// wrap past the end gain one equave
func rotate(s *store, k int) []interval.Value {
	n := len(s.degrees)
	tonic := s.degrees[k]
	out := make([]interval.Value, n)
	for j := range out {
		shift, wrapped := floorDivMod(k+j, n)
		out[j] = s.value(shift, wrapped).Difference(tonic)
	}
	return out
}

// WithReference returns a copy of s bound to reference pitch p.
func (s *Scale) WithReference(p pitch.Pitch) *Scale {
	return &Scale{Relative: s.Relative.WithReference(p)}
}

// Equal reports whether both scales hold the same degrees and equave.
func (s *Scale) Equal(other *Scale) bool {
	return s.Relative.Equal(other.Relative)
}

// Root returns a new Addressed collection resolving s against ref.
func (s *Scale) Root(ref pitch.Pitch) *Addressed {
	return newAddressed(s, ref)
}

func (s *Scale) fingerprint() string {
	return "scale|" + s.store.fingerprint()
}

func (s *Scale) combine(op SetOp, other *Scale) (*Scale, error) {
	r, err := combineRelative(op, s.Relative, other.Relative, true)
	if err != nil {
		return nil, err
	}
	return &Scale{Relative: r}, nil
}

// Union returns a scale of the degrees in either scale.
func (s *Scale) Union(other *Scale) (*Scale, error) {
	return s.combine(Union, other)
}

// Intersection returns a scale of the degrees in both scales.
func (s *Scale) Intersection(other *Scale) (*Scale, error) {
	return s.combine(Intersection, other)
}

// SymmetricDifference returns a scale of the degrees in exactly one scale.
// The unison is restored unless the result is empty.
func (s *Scale) SymmetricDifference(other *Scale) (*Scale, error) {
	return s.combine(SymmetricDifference, other)
}

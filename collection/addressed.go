package collection

import (
	"fmt"
	"sync"

	"github.com/jangler/equave/pitch"
)

// Addressed binds a collection to a reference pitch and memoizes the
// pitch resolved at each index.
type Addressed struct {
	source    Collection
	reference pitch.Pitch
	pitches   sync.Map // int -> pitch.Pitch
}

func newAddressed(source Collection, ref pitch.Pitch) *Addressed {
	return &Addressed{source: source, reference: ref}
}

// Source returns the collection being resolved.
func (a *Addressed) Source() Collection {
	return a.source
}

// Reference returns the reference pitch.
func (a *Addressed) Reference() pitch.Pitch {
	return a.reference
}

// Len returns the length of the source collection.
func (a *Addressed) Len() int {
	return a.source.Len()
}

// At returns the pitch at index i. Ratio values v resolve to
// reference*v, cents values c to reference*2^(c/1200); either way the
// pitch is tagged with the value as its partial.
func (a *Addressed) At(i int) (pitch.Pitch, error) {
	if p, ok := a.pitches.Load(i); ok {
		return p.(pitch.Pitch), nil
	}
	p, err := a.source.resolve(i, a.reference)
	if err != nil {
		return pitch.Pitch{}, err
	}
	stored, _ := a.pitches.LoadOrStore(i, p)
	return stored.(pitch.Pitch), nil
}

// Range returns the pitches at indices [lo, hi).
func (a *Addressed) Range(lo, hi int) ([]pitch.Pitch, error) {
	if hi < lo {
		return nil, fmt.Errorf("range [%d, %d): %w", lo, hi, ErrOutOfRange)
	}
	ps := make([]pitch.Pitch, 0, hi-lo)
	for i := lo; i < hi; i++ {
		p, err := a.At(i)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// Package collection models scales, chords and other pitch collections as
// periodic sequences: a finite list of degrees repeated at every equave
// (the interval of equivalence, 2/1 unless told otherwise).
//
// A Relative collection stores degrees as interval.Values, all ratios or
// all cents, and can be indexed at any integer:
//
//	s, _ := collection.NewScale(interval.MustParseAll("1/1", "9/8", "5/4", "4/3", "3/2", "5/3", "15/8"))
//	v, _ := s.At(7)  // 2/1, the unison one equave up
//	v, _ = s.At(-1)  // 15/16, the leading tone one equave down
//
// Index i maps to degree i mod n transposed by floor(i/n) equaves. A
// collection built WithCyclic(false) instead reports ErrOutOfRange outside
// [0, n).
//
// Binding a reference pitch with Root yields an Addressed collection that
// resolves indices to concrete pitches. Scale.Mode, Chord.Inversion,
// Chord.RetrogradeInversion and the set operations return new collections;
// nothing in this package mutates a collection after construction.
//
// Per-instance caches are filled lazily and are safe for concurrent use.
// A Registry shares Addressed collections between callers, keyed by
// content rather than identity.
package collection

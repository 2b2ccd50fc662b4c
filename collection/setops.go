package collection

import (
	"fmt"
	"slices"

	"github.com/jangler/equave/interval"
)

// SetOp names a binary set operation on degrees.
type SetOp uint8

const (
	Union SetOp = iota
	Intersection
	SymmetricDifference
)

func (op SetOp) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case SymmetricDifference:
		return "symmetric difference"
	}
	return fmt.Sprintf("SetOp(%d)", uint8(op))
}

// Combine applies op to two collections of the same concrete type. The
// result keeps the left operand's equave, cyclic policy and reference.
// Mixing a ratio and a cents collection converts the ratio side to cents.
func Combine(op SetOp, a, b Collection) (Collection, error) {
	switch a := a.(type) {
	case *Scale:
		if b, ok := b.(*Scale); ok {
			return nilIfErr(a.combine(op, b))
		}
	case *Chord:
		if b, ok := b.(*Chord); ok {
			return nilIfErr(a.combine(op, b))
		}
	case *Relative:
		if b, ok := b.(*Relative); ok {
			return nilIfErr(combineRelative(op, a, b, false))
		}
	}
	return nil, fmt.Errorf("%s of %T and %T: %w", op, a, b, ErrTypeMismatch)
}

// return c as a Collection, or a nil interface when err is set
func nilIfErr[C Collection](c C, err error) (Collection, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// return the degrees of a and b combined by op. operands of different
// kinds are compared in cents; ratios are never recovered from cents.
func combineDegrees(op SetOp, a, b *store) []interval.Value {
	kind := a.kind
	if a.kind != b.kind {
		kind = interval.Cents
	}
	ad, bd := a.degreesAs(kind), b.degreesAs(kind)
	in := func(vs []interval.Value) func(interval.Value) bool {
		return func(v interval.Value) bool {
			return slices.ContainsFunc(vs, v.Equal)
		}
	}
	var out []interval.Value
	switch op {
	case Union:
		out = append(slices.Clone(ad), bd...)
	case Intersection:
		out = slices.DeleteFunc(slices.Clone(ad), func(v interval.Value) bool {
			return !in(bd)(v)
		})
	case SymmetricDifference:
		out = slices.DeleteFunc(slices.Clone(ad), in(bd))
		out = append(out, slices.DeleteFunc(slices.Clone(bd), in(ad))...)
	}
	return out
}

// combine two relative collections into a new one like a
func combineRelative(op SetOp, a, b *Relative, anchored bool) (*Relative, error) {
	o := a.options()
	s, err := normalize(combineDegrees(op, &a.store, &b.store), o, anchored)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// an empty result of two cents operands would otherwise fall back to ratio
	if len(s.degrees) == 0 && (a.kind == interval.Cents || b.kind == interval.Cents) {
		s.kind, s.equave = interval.Cents, s.equave.ToCents()
	}
	return newRelative(s, o), nil
}

// Union returns the degrees in either collection.
func (c *Relative) Union(other *Relative) (*Relative, error) {
	return combineRelative(Union, c, other, false)
}

// Intersection returns the degrees in both collections.
func (c *Relative) Intersection(other *Relative) (*Relative, error) {
	return combineRelative(Intersection, c, other, false)
}

// SymmetricDifference returns the degrees in exactly one collection.
func (c *Relative) SymmetricDifference(other *Relative) (*Relative, error) {
	return combineRelative(SymmetricDifference, c, other, false)
}

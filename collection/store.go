package collection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jangler/equave/interval"
)

// ordered, deduplicated degrees of a single kind plus the equave
type store struct {
	degrees []interval.Value
	equave  interval.Value
	kind    interval.Kind
	cyclic  bool
}

// build a store from raw degrees. anchored stores (scales) always begin
// at the unison and hold only degrees below the equave.
func normalize(degrees []interval.Value, o options, anchored bool) (store, error) {
	kind := interval.Ratio
	if len(degrees) == 0 && o.hasEquave {
		kind = o.equave.Kind()
	}
	for _, d := range degrees {
		if d.Kind() == interval.Cents {
			kind = interval.Cents
			break
		}
	}

	var kept []interval.Value
	if kind == interval.Cents {
		// merge near-equal cents, first one wins
		for _, d := range degrees {
			c := d.ToCents()
			if !slices.ContainsFunc(kept, c.Equal) {
				kept = append(kept, c)
			}
		}
	} else {
		seen := make(map[string]bool, len(degrees))
		for _, d := range degrees {
			if key := d.String(); !seen[key] {
				seen[key] = true
				kept = append(kept, d)
			}
		}
	}
	slices.SortFunc(kept, interval.Value.Cmp)

	equave := interval.DefaultEquave(kind)
	if o.hasEquave {
		equave = o.equave.As(kind)
	}
	if o.cyclic && equave.Cents() < interval.Epsilon {
		return store{}, fmt.Errorf("equave %v: %w", equave, interval.ErrDivisionByZero)
	}

	if anchored && len(kept) > 0 {
		kept = slices.DeleteFunc(kept, equave.Equal)
		if len(kept) > 0 && kept[len(kept)-1].Cmp(equave) >= 0 {
			return store{}, fmt.Errorf("degree %v not below equave %v: %w", kept[len(kept)-1], equave, interval.ErrConversion)
		}
		identity := interval.Identity(kind)
		if len(kept) == 0 || !kept[0].Equal(identity) {
			if len(kept) > 0 && kept[0].Cmp(identity) < 0 {
				return store{}, fmt.Errorf("degree %v below unison: %w", kept[0], interval.ErrConversion)
			}
			kept = slices.Insert(kept, 0, identity)
		}
	}

	return store{degrees: kept, equave: equave, kind: kind, cyclic: o.cyclic}, nil
}

// floored division and modulo; the remainder is always in [0, n)
func floorDivMod(i, n int) (int, int) {
	q, r := i/n, i%n
	if r < 0 {
		q, r = q-1, r+n
	}
	return q, r
}

// return the equave shift and wrapped degree index for index i
func (s *store) locate(i int) (int, int, error) {
	n := len(s.degrees)
	if n == 0 {
		return 0, 0, fmt.Errorf("index %d: %w", i, ErrEmptyCollection)
	}
	if !s.cyclic && (i < 0 || i >= n) {
		return 0, 0, fmt.Errorf("index %d not in [0, %d): %w", i, n, ErrOutOfRange)
	}
	shift, wrapped := floorDivMod(i, n)
	return shift, wrapped, nil
}

// return the degree at wrapped transposed by shift equaves
func (s *store) value(shift, wrapped int) interval.Value {
	d := s.degrees[wrapped]
	if shift == 0 {
		return d
	}
	return d.Compose(s.equave.Pow(shift))
}

// return the degrees as the given kind
func (s *store) degreesAs(kind interval.Kind) []interval.Value {
	if kind == s.kind {
		return s.degrees
	}
	out := make([]interval.Value, len(s.degrees))
	for i, d := range s.degrees {
		out[i] = d.As(kind)
	}
	return out
}

// return true if both stores hold the same degrees, equave and policy
func (s *store) equal(other *store) bool {
	return s.kind == other.kind && s.cyclic == other.cyclic &&
		s.equave.Equal(other.equave) &&
		slices.EqualFunc(s.degrees, other.degrees, interval.Value.Equal)
}

// return a canonical content string, used as a cache key
func (s *store) fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%t|%s|", s.kind, s.cyclic, s.equave)
	for i, d := range s.degrees {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d.String())
	}
	return b.String()
}

// return the degrees joined by spaces and followed by the equave
func (s *store) String() string {
	parts := make([]string, len(s.degrees))
	for i, d := range s.degrees {
		parts[i] = d.String()
	}
	return fmt.Sprintf("[%s] / %s", strings.Join(parts, " "), s.equave)
}

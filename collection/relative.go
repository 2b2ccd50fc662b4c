package collection

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// Collection is implemented by every container in this package.
type Collection interface {
	// Len returns the number of stored degrees or pitches.
	Len() int
	// Cyclic reports whether indices beyond the stored range repeat.
	Cyclic() bool
	// Root binds a reference pitch, resolving indices to pitches.
	Root(ref pitch.Pitch) *Addressed

	resolve(i int, ref pitch.Pitch) (pitch.Pitch, error)
	fingerprint() string
}

// Relative is a collection of intervals measured from an implicit root.
// Values are memoized per (equave shift, degree) and intervals once, so a
// Relative must not be copied.
type Relative struct {
	store
	reference pitch.Pitch
	instanced bool

	intervalsOnce sync.Once
	intervals     []interval.Value
	values        sync.Map // [2]int{shift, wrapped} -> interval.Value
}

// return a new collection around an already normalized store
func newRelative(s store, o options) *Relative {
	return &Relative{store: s, reference: o.reference, instanced: o.hasReference}
}

// FromDegrees returns a collection of the given degrees, deduplicated and
// sorted. Any cents degree makes the whole collection cents.
func FromDegrees(degrees []interval.Value, opts ...Option) (*Relative, error) {
	o := newOptions(opts)
	s, err := normalize(degrees, o, false)
	if err != nil {
		return nil, err
	}
	return newRelative(s, o), nil
}

// FromIntervals returns a collection whose degrees are the running
// composition of intervals, starting at the unison.
func FromIntervals(intervals []interval.Value, opts ...Option) (*Relative, error) {
	return FromDegrees(accumulate(intervals), opts...)
}

// FromSetClass maps pitch classes of a mod-step division of the equave to
// cents degrees; with the default 1200-cent equave and mod 12 each step is
// 100 cents. Classes are reduced mod mod.
func FromSetClass(classes []int, mod int, opts ...Option) (*Relative, error) {
	if mod <= 0 {
		return nil, fmt.Errorf("set class mod %d: %w", mod, interval.ErrDivisionByZero)
	}
	o := newOptions(opts)
	equave := interval.DefaultEquave(interval.Cents)
	if o.hasEquave {
		equave = o.equave.ToCents()
	}
	step := equave.Cents() / float64(mod)
	degrees := make([]interval.Value, len(classes))
	for i, pc := range classes {
		_, pc = floorDivMod(pc, mod)
		degrees[i] = interval.NewCents(float64(pc) * step)
	}
	return FromDegrees(degrees, append(slices.Clip(opts), WithEquave(equave))...)
}

// return the running composition of intervals from the unison
func accumulate(intervals []interval.Value) []interval.Value {
	kind := interval.Ratio
	for _, iv := range intervals {
		if iv.Kind() == interval.Cents {
			kind = interval.Cents
			break
		}
	}
	acc := interval.Identity(kind)
	degrees := make([]interval.Value, 0, len(intervals)+1)
	degrees = append(degrees, acc)
	for _, iv := range intervals {
		acc = acc.Compose(iv)
		degrees = append(degrees, acc)
	}
	return degrees
}

// return the options that rebuild a collection like c
func (c *Relative) options() options {
	return options{
		equave:       c.equave,
		hasEquave:    true,
		reference:    c.reference,
		hasReference: c.instanced,
		cyclic:       c.cyclic,
	}
}

// Len returns the number of stored degrees.
func (c *Relative) Len() int {
	return len(c.degrees)
}

// Kind returns the numeric domain shared by all degrees.
func (c *Relative) Kind() interval.Kind {
	return c.kind
}

// Equave returns the interval of equivalence.
func (c *Relative) Equave() interval.Value {
	return c.equave
}

// Cyclic reports whether indices beyond the stored degrees are allowed.
func (c *Relative) Cyclic() bool {
	return c.cyclic
}

// Degrees returns a copy of the stored degrees.
func (c *Relative) Degrees() []interval.Value {
	return slices.Clone(c.degrees)
}

// Reference returns the reference pitch of an instanced collection.
func (c *Relative) Reference() (pitch.Pitch, bool) {
	return c.reference, c.instanced
}

// At returns the value at index i: degree i mod n raised by floor(i/n)
// equaves. The memo is never evicted, so callers walking huge index
// ranges pay for it in memory.
func (c *Relative) At(i int) (interval.Value, error) {
	shift, wrapped, err := c.locate(i)
	if err != nil {
		return interval.Value{}, err
	}
	key := [2]int{shift, wrapped}
	if v, ok := c.values.Load(key); ok {
		return v.(interval.Value), nil
	}
	v, _ := c.values.LoadOrStore(key, c.value(shift, wrapped))
	return v.(interval.Value), nil
}

// Intervals returns the steps between adjacent stored degrees.
func (c *Relative) Intervals() []interval.Value {
	c.intervalsOnce.Do(func() {
		if len(c.degrees) < 2 {
			return
		}
		c.intervals = make([]interval.Value, len(c.degrees)-1)
		for i := range c.intervals {
			c.intervals[i] = c.degrees[i+1].Difference(c.degrees[i])
		}
	})
	return slices.Clone(c.intervals)
}

// Slice returns the values at indices [lo, hi) as a non-cyclic collection
// with the same equave and reference.
func (c *Relative) Slice(lo, hi int) (*Relative, error) {
	if hi < lo {
		return nil, fmt.Errorf("slice [%d, %d): %w", lo, hi, ErrOutOfRange)
	}
	values := make([]interval.Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v, err := c.At(i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	o := c.options()
	o.cyclic = false
	s, err := normalize(values, o, false)
	if err != nil {
		return nil, err
	}
	return newRelative(s, o), nil
}

// IndexOf returns the lowest index i for which At(i) equals v, searching
// all equave transpositions of a cyclic collection.
func (c *Relative) IndexOf(v interval.Value) (int, bool) {
	index, found := 0, false
	for j, d := range c.degrees {
		if !c.cyclic {
			if d.Equal(v) {
				return j, true
			}
			continue
		}
		r, shift, err := v.Difference(d).Reduce(c.equave)
		if err != nil || !r.IsIdentity() {
			continue
		}
		if i := shift*len(c.degrees) + j; !found || i < index {
			index, found = i, true
		}
	}
	return index, found
}

// WithReference returns a copy of c bound to reference pitch p.
func (c *Relative) WithReference(p pitch.Pitch) *Relative {
	o := c.options()
	o.reference, o.hasReference = p, true
	return newRelative(c.store, o)
}

// Pitch resolves index i against the collection's own reference pitch.
func (c *Relative) Pitch(i int) (pitch.Pitch, error) {
	if !c.instanced {
		return pitch.Pitch{}, fmt.Errorf("index %d: %w", i, ErrNotInstanced)
	}
	return c.resolve(i, c.reference)
}

// Root returns a new Addressed collection resolving c against ref.
func (c *Relative) Root(ref pitch.Pitch) *Addressed {
	return newAddressed(c, ref)
}

// Equal reports whether both collections hold the same degrees, equave
// and indexing policy. Reference pitches are not compared.
func (c *Relative) Equal(other *Relative) bool {
	return c.store.equal(&other.store)
}

// resolve the value at i into a pitch above ref, tagged with the value
func (c *Relative) resolve(i int, ref pitch.Pitch) (pitch.Pitch, error) {
	v, err := c.At(i)
	if err != nil {
		return pitch.Pitch{}, err
	}
	return pitch.FromFreq(ref.Freq() * v.Float()).WithPartial(v), nil
}

func (c *Relative) fingerprint() string {
	return "relative|" + c.store.fingerprint()
}

// String returns the degrees followed by the equave.
func (c *Relative) String() string {
	return c.store.String()
}

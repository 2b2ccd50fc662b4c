package collection

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// Absolute is a collection of concrete pitches. With an equave it repeats
// cyclically, each period multiplying frequencies by the equave.
type Absolute struct {
	pitches   []pitch.Pitch
	equave    interval.Value
	cyclic    bool
	reference pitch.Pitch
	instanced bool

	values sync.Map // [2]int{shift, wrapped} -> pitch.Pitch
}

// FromPitches returns a collection of the given pitches in order. Without
// WithEquave the collection is not cyclic; WithReference rebases the
// partial of each pitch onto the reference.
func FromPitches(pitches []pitch.Pitch, opts ...Option) (*Absolute, error) {
	o := newOptions(opts)
	for _, p := range pitches {
		if !(p.Freq() > 0) {
			return nil, fmt.Errorf("frequency %v: not positive: %w", p.Freq(), interval.ErrConversion)
		}
	}
	a := &Absolute{
		pitches:   slices.Clone(pitches),
		equave:    interval.DefaultEquave(interval.Ratio),
		cyclic:    o.hasEquave && o.cyclic,
		reference: o.reference,
		instanced: o.hasReference,
	}
	if o.hasEquave {
		a.equave = o.equave
		if a.cyclic && a.equave.Cents() < interval.Epsilon {
			return nil, fmt.Errorf("equave %v: %w", a.equave, interval.ErrDivisionByZero)
		}
	}
	return a, nil
}

// FromMIDI returns a collection of 12-tet pitches for MIDI note numbers.
func FromMIDI(notes []float64, opts ...Option) (*Absolute, error) {
	ps := make([]pitch.Pitch, len(notes))
	for i, n := range notes {
		ps[i] = pitch.FromMIDI(n)
	}
	return FromPitches(ps, opts...)
}

// FromFreqs returns a collection of pitches at the given frequencies.
func FromFreqs(freqs []float64, opts ...Option) (*Absolute, error) {
	ps := make([]pitch.Pitch, len(freqs))
	for i, f := range freqs {
		ps[i] = pitch.FromFreq(f)
	}
	return FromPitches(ps, opts...)
}

// Len returns the number of stored pitches.
func (a *Absolute) Len() int {
	return len(a.pitches)
}

// Cyclic reports whether indices beyond the stored pitches are allowed.
func (a *Absolute) Cyclic() bool {
	return a.cyclic
}

// Equave returns the equave, 2/1 when none was given.
func (a *Absolute) Equave() interval.Value {
	return a.equave
}

// Pitches returns a copy of the stored pitches.
func (a *Absolute) Pitches() []pitch.Pitch {
	return slices.Clone(a.pitches)
}

// At returns the pitch at index i, tagged with its interval from the
// reference pitch when the collection has one.
func (a *Absolute) At(i int) (pitch.Pitch, error) {
	n := len(a.pitches)
	if n == 0 {
		return pitch.Pitch{}, fmt.Errorf("index %d: %w", i, ErrEmptyCollection)
	}
	if !a.cyclic && (i < 0 || i >= n) {
		return pitch.Pitch{}, fmt.Errorf("index %d not in [0, %d): %w", i, n, ErrOutOfRange)
	}
	shift, wrapped := floorDivMod(i, n)
	key := [2]int{shift, wrapped}
	if p, ok := a.values.Load(key); ok {
		return p.(pitch.Pitch), nil
	}
	p := a.pitches[wrapped]
	if shift != 0 {
		p = p.Transpose(a.equave.Pow(shift))
	}
	if a.instanced {
		p = rebase(p, a.reference)
	}
	stored, _ := a.values.LoadOrStore(key, p)
	return stored.(pitch.Pitch), nil
}

// return p tagged with its interval above ref, in cents
func rebase(p, ref pitch.Pitch) pitch.Pitch {
	return p.WithPartial(interval.NewCents(p.CentsDifference(ref)))
}

// Intervals returns the cents steps between adjacent stored pitches.
func (a *Absolute) Intervals() []interval.Value {
	if len(a.pitches) < 2 {
		return nil
	}
	out := make([]interval.Value, len(a.pitches)-1)
	for i := range out {
		out[i] = interval.NewCents(a.pitches[i+1].CentsDifference(a.pitches[i]))
	}
	return out
}

// Relative converts the pitches to a cents collection measured from the
// first pitch, which becomes the reference.
func (a *Absolute) Relative() (*Relative, error) {
	if len(a.pitches) == 0 {
		return nil, ErrEmptyCollection
	}
	first := a.pitches[0]
	degrees := make([]interval.Value, len(a.pitches))
	for i, p := range a.pitches {
		degrees[i] = interval.NewCents(p.CentsDifference(first))
	}
	return FromDegrees(degrees,
		WithEquave(a.equave), WithCyclic(a.cyclic), WithReference(first))
}

// Root returns a new Addressed collection whose pitches carry their
// interval from ref as partial.
func (a *Absolute) Root(ref pitch.Pitch) *Addressed {
	return newAddressed(a, ref)
}

func (a *Absolute) resolve(i int, ref pitch.Pitch) (pitch.Pitch, error) {
	p, err := a.At(i)
	if err != nil {
		return pitch.Pitch{}, err
	}
	return rebase(p, ref), nil
}

func (a *Absolute) fingerprint() string {
	var b strings.Builder
	b.WriteString("absolute|")
	b.WriteString(strconv.FormatBool(a.cyclic))
	b.WriteByte('|')
	b.WriteString(a.equave.String())
	b.WriteByte('|')
	for i, p := range a.pitches {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(p.Freq(), 'g', -1, 64))
	}
	return b.String()
}

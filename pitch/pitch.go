// Package pitch provides a concrete pitch type: a frequency, optionally
// tagged with the interval (partial) it was derived from.
package pitch

import (
	"fmt"
	"math"

	"github.com/jangler/equave/interval"
)

const (
	A4Freq = 440.0
	A4MIDI = 69
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Pitch is an immutable frequency in Hz. The partial, when set, records the
// interval above some reference that produced the pitch.
type Pitch struct {
	freq       float64
	partial    interval.Value
	hasPartial bool
}

// FromFreq returns the pitch at freq Hz. Frequencies are expected to be
// positive.
func FromFreq(freq float64) Pitch {
	return Pitch{freq: freq}
}

// FromMIDI returns the 12-tet pitch for a (possibly fractional) MIDI note
// number, tuned to A4 = 440 Hz.
func FromMIDI(note float64) Pitch {
	return FromFreq(A4Freq * math.Exp2((note-A4MIDI)/12))
}

// Freq returns the frequency in Hz.
func (p Pitch) Freq() float64 {
	return p.freq
}

// WithPartial returns a copy of p tagged with partial v.
func (p Pitch) WithPartial(v interval.Value) Pitch {
	p.partial, p.hasPartial = v, true
	return p
}

// Partial returns the partial tag, if any.
func (p Pitch) Partial() (interval.Value, bool) {
	return p.partial, p.hasPartial
}

// MIDI returns the fractional MIDI note number of p.
func (p Pitch) MIDI() float64 {
	return A4MIDI + 12*math.Log2(p.freq/A4Freq)
}

// return the nearest 12-tet MIDI note
func (p Pitch) nearest() int {
	return int(math.Round(p.MIDI()))
}

// PitchClass returns the nearest 12-tet pitch class, C = 0.
func (p Pitch) PitchClass() int {
	pc := p.nearest() % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Octave returns the scientific octave number of the nearest 12-tet note.
func (p Pitch) Octave() int {
	return int(math.Floor(float64(p.nearest())/12)) - 1
}

// CentsOffset returns the deviation in cents from the nearest 12-tet note.
func (p Pitch) CentsOffset() float64 {
	return 100 * (p.MIDI() - float64(p.nearest()))
}

// CentsDifference returns the interval from other up to p, in cents.
func (p Pitch) CentsDifference(other Pitch) float64 {
	return 1200 * math.Log2(p.freq/other.freq)
}

// Transpose returns p moved by interval v. The partial tag is dropped.
func (p Pitch) Transpose(v interval.Value) Pitch {
	return FromFreq(p.freq * v.Float())
}

// Equal reports whether the two frequencies agree within
// interval.Epsilon cents. Partials are not compared.
func (p Pitch) Equal(other Pitch) bool {
	return math.Abs(p.CentsDifference(other)) < interval.Epsilon
}

// Name returns the nearest 12-tet note name, like "A4".
func (p Pitch) Name() string {
	return fmt.Sprintf("%s%d", noteNames[p.PitchClass()], p.Octave())
}

// Bend returns the nearest MIDI note and the pitch bend value needed to
// reach p, given a bend range of bendSemitones in each direction.
func (p Pitch) Bend(bendSemitones float64) (uint8, int16) {
	m := p.MIDI()
	note := math.Round(math.Max(0, math.Min(127, m)))
	bend := (m - note) * 8192 / bendSemitones
	bend = math.Max(-8192, math.Min(8191, bend))
	return uint8(note), int16(bend)
}

// String returns the note name, cents offset and frequency.
func (p Pitch) String() string {
	return fmt.Sprintf("%s%+.2f (%.3f Hz)", p.Name(), p.CentsOffset(), p.freq)
}

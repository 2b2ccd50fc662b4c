package collection

import (
	"github.com/jangler/equave/interval"
	"github.com/jangler/equave/pitch"
)

// Option configures collection construction.
type Option func(*options)

type options struct {
	equave       interval.Value
	hasEquave    bool
	reference    pitch.Pitch
	hasReference bool
	cyclic       bool
}

// WithEquave sets the interval of equivalence. It is converted to the kind
// of the collection's degrees.
func WithEquave(v interval.Value) Option {
	return func(o *options) {
		o.equave, o.hasEquave = v, true
	}
}

// WithReference makes the collection instanced: its indices resolve to
// pitches relative to p.
func WithReference(p pitch.Pitch) Option {
	return func(o *options) {
		o.reference, o.hasReference = p, true
	}
}

// WithCyclic sets whether indexing past the stored degrees repeats them
// at successive equaves. Collections are cyclic by default.
func WithCyclic(cyclic bool) Option {
	return func(o *options) {
		o.cyclic = cyclic
	}
}

// apply options over the defaults
func newOptions(opts []Option) options {
	o := options{cyclic: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package main

import (
	"fmt"

	"gitlab.com/gomidi/midi/writer"

	"github.com/jangler/equave/collection"
)

// write pitches [lo, hi) of a as an arpeggio to a standard MIDI file, one
// note per step. each note is bent from its nearest 12-tet key.
func exportSMF(path string, a *collection.Addressed, lo, hi int, s *settings) error {
	pitches, err := a.Range(lo, hi)
	if err != nil {
		return err
	}
	return writer.WriteSMF(path, 1, func(wr *writer.SMF) error {
		wr.SetChannel(0)
		if err := writer.RPN(wr, 0, 0, uint8(s.BendSemitones), 0); err != nil {
			return err
		}
		vel := uint8(s.Velocity)
		for i, p := range pitches {
			key, bend := p.Bend(s.BendSemitones)
			if err := writer.Pitchbend(wr, bend); err != nil {
				return err
			}
			if err := writer.NoteOn(wr, key, vel); err != nil {
				return fmt.Errorf("note %d (%v): %w", lo+i, p, err)
			}
			wr.SetDelta(uint32(s.TicksPerStep))
			if err := writer.NoteOff(wr, key); err != nil {
				return err
			}
		}
		writer.EndOfTrack(wr)
		return nil
	})
}

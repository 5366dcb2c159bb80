package midi

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jsphweid/fretnot/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

var ErrEmptyChord = errors.New("midi: chord has no notes")

type StrumOptions struct {
	Channel  uint8
	Velocity uint8
	// delay between successive strings
	StrumTicks uint32
	// how long the chord rings after the last string is struck
	HoldTicks uint32
	BPM       float64
}

func DefaultStrumOptions() StrumOptions {
	return StrumOptions{
		Channel:    0,
		Velocity:   90,
		StrumTicks: 40,
		HoldTicks:  4 * ticksPerQuarter,
		BPM:        90,
	}
}

// WriteChord writes notes as a single downstroke, lowest pitch first, to a
// one-track SMF.
func WriteChord(w io.Writer, notes []model.SoundingNote, opts StrumOptions) error {
	if len(notes) == 0 {
		return ErrEmptyChord
	}

	sorted := make([]model.SoundingNote, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Midi < sorted[j].Midi
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opts.BPM))
	for i, n := range sorted {
		var delta uint32
		if i > 0 {
			delta = opts.StrumTicks
		}
		tr.Add(delta, gomidi.NoteOn(opts.Channel, uint8(n.Midi), opts.Velocity))
	}
	for i, n := range sorted {
		var delta uint32
		if i == 0 {
			delta = opts.HoldTicks
		}
		tr.Add(delta, gomidi.NoteOff(opts.Channel, uint8(n.Midi)))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write midi: %w", err)
	}
	return nil
}

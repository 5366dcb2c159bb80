// Package fretboard resolves fret selections into sounding notes and places
// chord notes back onto the strings.
package fretboard

import (
	"errors"

	"github.com/jsphweid/fretnot/constants"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
)

// NotFound is returned by FindFretForNote when no fret in range works.
const NotFound = -1

var ErrNoNotes = errors.New("no notes to voice")

// StandardTuning is E4 B3 G3 D3 A2 E2, highest string first.
func StandardTuning() model.Tuning {
	return model.Tuning{
		{PitchClass: "E", Midi: 64},
		{PitchClass: "B", Midi: 59},
		{PitchClass: "G", Midi: 55},
		{PitchClass: "D", Midi: 50},
		{PitchClass: "A", Midi: 45},
		{PitchClass: "E", Midi: 40},
	}
}

type Mapper struct {
	tuning  model.Tuning
	maxFret int
}

func NewMapper(tuning model.Tuning, maxFret int) *Mapper {
	return &Mapper{tuning: tuning, maxFret: maxFret}
}

func Default() *Mapper {
	return NewMapper(StandardTuning(), constants.MaxFret)
}

func (m *Mapper) Tuning() model.Tuning {
	return m.tuning
}

func (m *Mapper) MaxFret() int {
	return m.maxFret
}

func Muted() model.Fretboard {
	var b model.Fretboard
	for i := range b {
		b[i] = constants.Muted
	}
	return b
}

func (m *Mapper) pitchAt(stringIndex int, fret int) (model.PitchClass, int) {
	open := m.tuning[stringIndex]
	return pitch.FromMidi(open.Midi + fret), open.Midi + fret
}

// SoundingNotes lists the notes of board in string order. Muted strings and
// frets outside [0, MaxFret] are skipped.
func (m *Mapper) SoundingNotes(board model.Fretboard) []model.SoundingNote {
	var res []model.SoundingNote
	for s, fret := range board {
		if fret < 0 || fret > m.maxFret {
			continue
		}
		pc, midi := m.pitchAt(s, fret)
		res = append(res, model.SoundingNote{
			String:     s,
			Fret:       fret,
			PitchClass: pc,
			Midi:       midi,
		})
	}
	return res
}

// FindFretForNote scans frets 0..MaxFret on one string and returns the first
// that sounds target, or NotFound.
func (m *Mapper) FindFretForNote(stringIndex int, target model.PitchClass) int {
	if stringIndex < 0 || stringIndex >= len(m.tuning) {
		return NotFound
	}
	want, err := pitch.Normalize(string(target))
	if err != nil {
		return NotFound
	}
	for fret := 0; fret <= m.maxFret; fret++ {
		if pc, _ := m.pitchAt(stringIndex, fret); pc == want {
			return fret
		}
	}
	return NotFound
}

// ApplyChordToBoard builds a fresh board from notes. Strings are filled from
// the lowest pitched one up, cycling through notes, each on the lowest fret
// that sounds its note. Placement is greedy: hand span and duplicated frets
// are not considered.
func (m *Mapper) ApplyChordToBoard(notes []model.PitchClass) (model.Fretboard, error) {
	var targets []model.PitchClass
	for _, n := range notes {
		pc, err := pitch.Normalize(string(n))
		if err != nil {
			continue
		}
		targets = append(targets, pc)
	}
	if len(targets) == 0 {
		return Muted(), ErrNoNotes
	}

	board := Muted()
	k := 0
	for s := len(m.tuning) - 1; s >= 0; s-- {
		target := targets[k%len(targets)]
		k++
		if fret := m.FindFretForNote(s, target); fret != NotFound {
			board[s] = fret
		}
	}
	return board, nil
}

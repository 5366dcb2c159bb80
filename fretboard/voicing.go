package fretboard

import (
	"fmt"

	"github.com/jsphweid/fretnot/formula"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"github.com/jsphweid/fretnot/util"
)

// NotesForFormula spells f on root, one pitch class per distinct interval.
func NotesForFormula(root string, f model.ChordFormula) ([]model.PitchClass, error) {
	notes := make([]model.PitchClass, 0, len(f.Intervals))
	for _, interval := range f.Intervals {
		pc, err := pitch.Transpose(root, interval)
		if err != nil {
			return nil, fmt.Errorf("spelling %v %v: %w", root, f.Name, err)
		}
		notes = append(notes, pc)
	}
	return util.Unique(notes), nil
}

// NotesForSymbol spells a chord symbol such as "Am7" or "F#maj". A bare
// root is read as a major chord.
func NotesForSymbol(lib *formula.Library, symbol string) ([]model.PitchClass, error) {
	root, suffix, err := pitch.SplitSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if suffix == "" {
		suffix = "Major"
	}
	f, err := lib.Get(suffix)
	if err != nil {
		return nil, err
	}
	return NotesForFormula(string(root), f)
}

func (m *Mapper) VoiceFormula(root string, f model.ChordFormula) (model.Fretboard, []model.PitchClass, error) {
	notes, err := NotesForFormula(root, f)
	if err != nil {
		return Muted(), nil, err
	}
	board, err := m.ApplyChordToBoard(notes)
	return board, notes, err
}

func (m *Mapper) VoiceSymbol(lib *formula.Library, symbol string) (model.Fretboard, []model.PitchClass, error) {
	notes, err := NotesForSymbol(lib, symbol)
	if err != nil {
		return Muted(), nil, err
	}
	board, err := m.ApplyChordToBoard(notes)
	return board, notes, err
}

// VoiceNotes places an explicit list of note names. Unparseable names are
// dropped and repeats collapse to their first appearance.
func (m *Mapper) VoiceNotes(names []string) (model.Fretboard, []model.PitchClass, error) {
	var notes []model.PitchClass
	for _, name := range names {
		if pc, err := pitch.Normalize(name); err == nil {
			notes = append(notes, pc)
		}
	}
	notes = util.Unique(notes)
	board, err := m.ApplyChordToBoard(notes)
	return board, notes, err
}

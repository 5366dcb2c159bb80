package midi

import (
	"sort"

	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Onset is the set of keys held down right after the events at one instant.
type Onset struct {
	// microseconds from the start of the file
	Offset int64
	Notes  []model.SoundingNote
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	key       uint8
}

// GetChords flattens every track and snapshots the held keys at each
// instant where something changed. Instants where nothing is held are left
// out. Onsets come back in time order.
func GetChords(s *smf.SMF) []Onset {
	var events []reducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				events = append(events, reducedEvent{offset: s.TimeAt(absTicks), key: key})
			case ev.Message.GetNoteEnd(&ch, &key):
				events = append(events, reducedEvent{offset: s.TimeAt(absTicks), isNoteOff: true, key: key})
			}
		}
	}

	// earlier first, then releases before presses at the same instant
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].offset != events[j].offset {
			return events[i].offset < events[j].offset
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var res []Onset
	pressed := make(map[uint8]bool)
	for i, ev := range events {
		if ev.isNoteOff {
			delete(pressed, ev.key)
		} else {
			pressed[ev.key] = true
		}

		lastAtInstant := i == len(events)-1 || events[i+1].offset != ev.offset
		if lastAtInstant && len(pressed) > 0 {
			res = append(res, Onset{Offset: ev.offset, Notes: keysToNotes(pressed)})
		}
	}
	return res
}

// keysToNotes renders held keys as sounding notes, lowest first. Keys have
// no string or fret.
func keysToNotes(pressed map[uint8]bool) []model.SoundingNote {
	keys := make([]int, 0, len(pressed))
	for k := range pressed {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	notes := make([]model.SoundingNote, len(keys))
	for i, k := range keys {
		notes[i] = model.SoundingNote{String: -1, Fret: -1, PitchClass: pitch.FromMidi(k), Midi: k}
	}
	return notes
}

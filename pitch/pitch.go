// Package pitch implements note naming, enharmonic normalization and
// semitone arithmetic. Every comparison elsewhere in the module goes through
// Normalize first, so "Db" and "C#" are the same pitch class.
package pitch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/util"
)

var ErrInvalidNote = errors.New("invalid note name")

var sharpNames = [12]model.PitchClass{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var letterChroma = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var glyphs = strings.NewReplacer("♯", "#", "♭", "b", "𝄪", "##", "𝄫", "bb")

type note struct {
	letter    byte
	alt       int
	octave    int
	hasOctave bool
}

func (n note) chroma() int {
	return util.Mod(letterChroma[n.letter]+n.alt, 12)
}

func (n note) midi() int {
	return (n.octave+1)*12 + letterChroma[n.letter] + n.alt
}

func parse(name string) (note, error) {
	var n note
	s := glyphs.Replace(strings.TrimSpace(name))
	if s == "" {
		return n, fmt.Errorf("%w: empty", ErrInvalidNote)
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	if _, ok := letterChroma[letter]; !ok {
		return n, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	n.letter = letter

	i := 1
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			n.alt++
			continue
		case 'b':
			n.alt--
			continue
		}
		break
	}

	rest := s[i:]
	if rest == "" {
		return n, nil
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return n, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	n.octave = octave
	n.hasOctave = true
	return n, nil
}

// EnharmonicEquivalent returns the alternate spelling of a note name: flats
// become sharps, sharps become flats, naturals are returned as they are.
// Octaves are dropped. Invalid names return "".
func EnharmonicEquivalent(name string) string {
	n, err := parse(name)
	if err != nil {
		return ""
	}
	switch {
	case n.alt < 0:
		return string(sharpNames[n.chroma()])
	case n.alt > 0:
		return flatNames[n.chroma()]
	default:
		return string(n.letter)
	}
}

// Normalize maps any spelling ("Db", "C♯", "c#3") to its sharp pitch class.
func Normalize(name string) (model.PitchClass, error) {
	n, err := parse(name)
	if err != nil {
		return "", err
	}
	if n.alt < 0 {
		n, err = parse(EnharmonicEquivalent(name))
		if err != nil {
			return "", err
		}
	}
	return sharpNames[n.chroma()], nil
}

// Chroma is the pitch class number, C = 0 ... B = 11.
func Chroma(name string) (int, error) {
	n, err := parse(name)
	if err != nil {
		return 0, err
	}
	return n.chroma(), nil
}

// ParseNote reads a note with an octave ("E4") into its pitch class and MIDI number.
func ParseNote(name string) (model.PitchClass, int, error) {
	n, err := parse(name)
	if err != nil {
		return "", 0, err
	}
	if !n.hasOctave {
		return "", 0, fmt.Errorf("%w: %q has no octave", ErrInvalidNote, name)
	}
	return sharpNames[n.chroma()], n.midi(), nil
}

func FromMidi(midi int) model.PitchClass {
	return sharpNames[util.Mod(midi, 12)]
}

// NoteName renders a MIDI number as "E2", "C#4", ...
func NoteName(midi int) string {
	return fmt.Sprintf("%s%d", FromMidi(midi), midi/12-1)
}

// SemitoneDistance is the ascending distance from a to b, in [0, 11].
func SemitoneDistance(a, b string) (int, error) {
	ca, err := Chroma(a)
	if err != nil {
		return 0, err
	}
	cb, err := Chroma(b)
	if err != nil {
		return 0, err
	}
	return util.Mod(cb-ca, 12), nil
}

// Transpose applies interval to root and returns the normalized result.
func Transpose(root string, interval string) (model.PitchClass, error) {
	c, err := Chroma(root)
	if err != nil {
		return "", err
	}
	s, err := Semitones(interval)
	if err != nil {
		return "", err
	}
	return sharpNames[util.Mod(c+s, 12)], nil
}

// SplitSymbol splits "C#m7" into ("C#", "m7"). A trailing slash bass
// ("Am7/G") is dropped.
func SplitSymbol(symbol string) (model.PitchClass, string, error) {
	s := glyphs.Replace(strings.TrimSpace(symbol))
	if slash := strings.LastIndex(s, "/"); slash > 0 {
		if _, err := parse(s[slash+1:]); err == nil {
			s = s[:slash]
		}
	}
	if s == "" {
		return "", "", fmt.Errorf("%w: empty symbol", ErrInvalidNote)
	}

	end := 1
	for end < len(s) && (s[end] == '#' || s[end] == 'b') {
		end++
	}
	root, err := Normalize(s[:end])
	if err != nil {
		return "", "", err
	}
	return root, s[end:], nil
}

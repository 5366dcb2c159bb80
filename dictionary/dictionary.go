// Package dictionary is the exact-match chord lookup the engine consults
// next to its own formula library.
package dictionary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"github.com/jsphweid/fretnot/util"
)

// Dictionary returns every chord name whose pitch-class set, rooted on any
// of the given pitch classes, matches them. It must return nothing, not
// fail, for fewer than two pitch classes.
type Dictionary interface {
	DetectExact(pitchClasses []model.PitchClass) []string
}

// Func adapts a plain function into a Dictionary.
type Func func(pitchClasses []model.PitchClass) []string

func (f Func) DetectExact(pitchClasses []model.PitchClass) []string {
	return f(pitchClasses)
}

// Empty never finds anything.
var Empty = Func(func([]model.PitchClass) []string { return nil })

type ChordType struct {
	Symbol    string
	Intervals []string
}

// Catalog indexes chord types by their root-relative semitone key.
type Catalog struct {
	byKey map[string][]string
}

// CreateChordKey sorts semitone offsets (reduced mod 12, deduplicated) and
// joins them, e.g. []int{7, 0, 16} -> "0-4-7".
func CreateChordKey(semitones []int) string {
	reduced := make([]int, 0, len(semitones))
	for _, s := range semitones {
		reduced = append(reduced, util.Mod(s, 12))
	}
	reduced = util.Unique(reduced)
	sort.Ints(reduced)

	parts := make([]string, len(reduced))
	for i, s := range reduced {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, "-")
}

func NewCatalog(types []ChordType) (*Catalog, error) {
	c := &Catalog{byKey: make(map[string][]string)}
	for _, ct := range types {
		semitones := []int{0}
		for _, interval := range ct.Intervals {
			s, err := pitch.Semitones(interval)
			if err != nil {
				return nil, fmt.Errorf("chord type %q: %w", ct.Symbol, err)
			}
			semitones = append(semitones, s)
		}
		key := CreateChordKey(semitones)
		c.byKey[key] = append(c.byKey[key], ct.Symbol)
	}
	return c, nil
}

func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultChordTypes)
	if err != nil {
		panic("default chord catalog is broken: " + err.Error())
	}
	return c
}

// DetectExact tries each pitch class as a root, in the order given. Invalid
// names are ignored.
func (c *Catalog) DetectExact(pitchClasses []model.PitchClass) []string {
	var pcs []model.PitchClass
	for _, name := range pitchClasses {
		pc, err := pitch.Normalize(string(name))
		if err != nil {
			continue
		}
		pcs = append(pcs, pc)
	}
	pcs = util.Unique(pcs)
	if len(pcs) < 2 {
		return nil
	}

	var res []string
	for _, root := range pcs {
		semitones := make([]int, 0, len(pcs))
		for _, pc := range pcs {
			d, _ := pitch.SemitoneDistance(string(root), string(pc))
			semitones = append(semitones, d)
		}
		for _, symbol := range c.byKey[CreateChordKey(semitones)] {
			res = append(res, string(root)+symbol)
		}
	}
	return res
}

var defaultChordTypes = []ChordType{
	{Symbol: "maj", Intervals: []string{"3M", "5P"}},
	{Symbol: "m", Intervals: []string{"3m", "5P"}},
	{Symbol: "dim", Intervals: []string{"3m", "5d"}},
	{Symbol: "aug", Intervals: []string{"3M", "5A"}},
	{Symbol: "sus2", Intervals: []string{"2M", "5P"}},
	{Symbol: "sus4", Intervals: []string{"4P", "5P"}},
	{Symbol: "5", Intervals: []string{"5P"}},
	{Symbol: "7", Intervals: []string{"3M", "5P", "7m"}},
	{Symbol: "maj7", Intervals: []string{"3M", "5P", "7M"}},
	{Symbol: "m7", Intervals: []string{"3m", "5P", "7m"}},
	{Symbol: "mMaj7", Intervals: []string{"3m", "5P", "7M"}},
	{Symbol: "m7b5", Intervals: []string{"3m", "5d", "7m"}},
	{Symbol: "dim7", Intervals: []string{"3m", "5d", "7d"}},
	{Symbol: "7b5", Intervals: []string{"3M", "5d", "7m"}},
	{Symbol: "aug7", Intervals: []string{"3M", "5A", "7m"}},
	{Symbol: "7sus4", Intervals: []string{"4P", "5P", "7m"}},
	{Symbol: "maj6", Intervals: []string{"3M", "5P", "6M"}},
	{Symbol: "m6", Intervals: []string{"3m", "5P", "6M"}},
	{Symbol: "add9", Intervals: []string{"3M", "5P", "9M"}},
	{Symbol: "madd9", Intervals: []string{"3m", "5P", "9M"}},
	{Symbol: "69", Intervals: []string{"3M", "5P", "6M", "9M"}},
	{Symbol: "9", Intervals: []string{"3M", "5P", "7m", "9M"}},
	{Symbol: "maj9", Intervals: []string{"3M", "5P", "7M", "9M"}},
	{Symbol: "m9", Intervals: []string{"3m", "5P", "7m", "9M"}},
	{Symbol: "7b9", Intervals: []string{"3M", "5P", "7m", "9m"}},
	{Symbol: "7#9", Intervals: []string{"3M", "5P", "7m", "9A"}},
	{Symbol: "11", Intervals: []string{"3M", "5P", "7m", "9M", "11P"}},
	{Symbol: "13", Intervals: []string{"3M", "5P", "7m", "9M", "13M"}},
}

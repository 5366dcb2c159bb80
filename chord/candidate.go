package chord

import (
	"github.com/jsphweid/fretnot/formula"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"github.com/jsphweid/fretnot/util"
	"go.uber.org/zap"
)

const PartialSuffix = " (partial)"

// intervalSet is what sounds above one candidate root.
type intervalSet struct {
	semitones map[int]bool
	labels    map[string]bool
}

func intervalsAbove(root model.PitchClass, pcs []model.PitchClass) intervalSet {
	s := intervalSet{
		semitones: make(map[int]bool),
		labels:    make(map[string]bool),
	}
	for _, pc := range pcs {
		d, err := pitch.SemitoneDistance(string(root), string(pc))
		if err != nil {
			continue
		}
		s.semitones[d] = true
		s.labels[pitch.IntervalForSemitones(d)] = true
	}
	return s
}

// has matches by label first, then by semitone distance, since the same
// distance may be spelled two ways ("5A" and "6m").
func (s intervalSet) has(interval string) bool {
	if s.labels[interval] {
		return true
	}
	semitones, err := pitch.Semitones(interval)
	if err != nil {
		return false
	}
	return s.semitones[util.Mod(semitones, 12)]
}

// sortedLabels lists the sounding intervals from the root upwards.
func (s intervalSet) sortedLabels() []string {
	semitones := util.GetKeys(s.semitones)
	res := make([]string, 0, len(semitones))
	for _, st := range semitones {
		res = append(res, pitch.IntervalForSemitones(st))
	}
	return res
}

func matchFormula(root model.PitchClass, f model.ChordFormula, present intervalSet) (model.ChordCandidate, bool) {
	for _, interval := range formula.Essential(f) {
		if !present.has(interval) {
			return model.ChordCandidate{}, false
		}
	}

	var missingOptional int
	for _, interval := range f.Optional {
		if !present.has(interval) {
			missingOptional++
		}
	}
	total := len(f.Intervals)
	completion := float64(total-missingOptional) / float64(total)

	symbol := string(root) + f.Symbol()
	label := symbol
	if completion < 1 {
		label += PartialSuffix
	}

	return model.ChordCandidate{
		Root:       root,
		Symbol:     symbol,
		Label:      label,
		Formula:    f.Name,
		Intervals:  append([]string(nil), f.Intervals...),
		Completion: completion,
		Source:     model.SourceLibrary,
	}, true
}

// candidates tries every pitch class as a root against the library, then
// asks the dictionary, and merges both by symbol.
func (e *Engine) candidates(pcs []model.PitchClass) []model.ChordCandidate {
	var res []model.ChordCandidate
	formulas := e.library.All()

	for _, root := range pcs {
		present := intervalsAbove(root, pcs)
		for _, f := range formulas {
			if c, ok := matchFormula(root, f, present); ok {
				res = append(res, c)
			}
		}
	}

	for _, name := range e.dict.DetectExact(pcs) {
		root, suffix, err := pitch.SplitSymbol(name)
		if err != nil {
			e.logger.Debug("skipping dictionary name", zap.String("name", name), zap.Error(err))
			continue
		}
		// respelled so "Dbmaj" and "C#maj" merge
		symbol := string(root) + suffix
		res = append(res, model.ChordCandidate{
			Root:       root,
			Symbol:     symbol,
			Label:      symbol,
			Intervals:  intervalsAbove(root, pcs).sortedLabels(),
			Completion: 1,
			Source:     model.SourceDictionary,
		})
	}

	return mergeCandidates(res)
}

// mergeCandidates dedupes by symbol. The first position of a symbol is kept;
// its content is replaced when a later duplicate is more complete.
func mergeCandidates(candidates []model.ChordCandidate) []model.ChordCandidate {
	index := make(map[string]int)
	var res []model.ChordCandidate
	for _, c := range candidates {
		i, ok := index[c.Symbol]
		if !ok {
			index[c.Symbol] = len(res)
			res = append(res, c)
			continue
		}
		if c.Completion > res[i].Completion {
			res[i] = c
		}
	}
	return res
}

// semitoneSet is used by scoring and the heuristic pass, which only care
// about distances.
func semitoneSet(root model.PitchClass, pcs []model.PitchClass) map[int]bool {
	return intervalsAbove(root, pcs).semitones
}

package chord

import (
	"sort"

	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/util"
)

// Weights are the additive scoring bonuses. The defaults were tuned by ear;
// they are not derived from anything.
type Weights struct {
	// root is the lowest sounding pitch class
	Bass float64 `yaml:"bass" json:"bass"`
	// four or more intervals in the chord structure
	Rich float64 `yaml:"rich" json:"rich"`
	// root is actually sounding
	RootPresent float64 `yaml:"root_present" json:"root_present"`
	// a major or minor seventh sounds above the root
	Seventh float64 `yaml:"seventh" json:"seventh"`
	// a b9, 9, 11 or 13 sounds above the root
	Extension float64 `yaml:"extension" json:"extension"`
	// multiplier on the completion score
	Completion float64 `yaml:"completion" json:"completion"`
}

func DefaultWeights() Weights {
	return Weights{
		Bass:        4,
		Rich:        1,
		RootPresent: 1,
		Seventh:     2,
		Extension:   1,
		Completion:  1,
	}
}

// semitone offsets of b9, 9, 11 and 13 reduced to one octave
var extensionSemitones = []int{1, 2, 5, 9}

func (w Weights) score(c model.ChordCandidate, pcs []model.PitchClass, bass model.PitchClass) float64 {
	var score float64
	if c.Root == bass {
		score += w.Bass
	}
	if len(c.Intervals) >= 4 {
		score += w.Rich
	}
	if util.Contains(pcs, c.Root) {
		score += w.RootPresent
	}

	above := semitoneSet(c.Root, pcs)
	if above[10] || above[11] {
		score += w.Seventh
	}
	for _, s := range extensionSemitones {
		if above[s] {
			score += w.Extension
			break
		}
	}

	score += w.Completion * c.Completion
	return score
}

// rank scores every candidate and sorts by score, highest first. Equal
// scores keep their encounter order.
func (e *Engine) rank(candidates []model.ChordCandidate, pcs []model.PitchClass, bass model.PitchClass) []model.RankedChord {
	ranked := make([]model.RankedChord, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, model.RankedChord{
			ChordCandidate: c,
			Score:          e.weights.score(c, pcs, bass),
		})
	}
	RankSortChords(ranked)
	return ranked
}

func RankSortChords(chords []model.RankedChord) {
	sort.SliceStable(chords, func(i, j int) bool {
		return chords[i].Score > chords[j].Score
	})
}

// labels dedupes the ranked display labels, then appends heuristic spellings
// not already among them. A heuristic "Cmaj6" is kept next to a ranked
// "Cmaj6 (partial)" since the two display differently.
func (e *Engine) labels(ranked []model.RankedChord, pcs []model.PitchClass) []string {
	var res []string
	seen := make(map[string]bool)
	for _, r := range ranked {
		if seen[r.Label] {
			continue
		}
		seen[r.Label] = true
		res = append(res, r.Label)
	}

	for _, label := range heuristicLabels(pcs) {
		if seen[label] {
			continue
		}
		seen[label] = true
		res = append(res, label)
	}
	return res
}

package chord

import (
	"sort"

	"github.com/jsphweid/fretnot/dictionary"
	"github.com/jsphweid/fretnot/formula"
	"github.com/jsphweid/fretnot/fretboard"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"go.uber.org/zap"
)

// Engine names the chord sounding on a fretboard. It keeps no state between
// calls and is safe for concurrent use.
type Engine struct {
	mapper  *fretboard.Mapper
	library *formula.Library
	dict    dictionary.Dictionary
	weights Weights
	logger  *zap.Logger
}

type Option func(*Engine)

func WithMapper(m *fretboard.Mapper) Option {
	return func(e *Engine) { e.mapper = m }
}

func WithLibrary(l *formula.Library) Option {
	return func(e *Engine) { e.library = l }
}

func WithDictionary(d dictionary.Dictionary) Option {
	return func(e *Engine) { e.dict = d }
}

func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		mapper:  fretboard.Default(),
		library: formula.Default(),
		dict:    dictionary.DefaultCatalog(),
		weights: DefaultWeights(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dict == nil {
		e.dict = dictionary.Empty
	}
	return e
}

func (e *Engine) Mapper() *fretboard.Mapper {
	return e.mapper
}

func (e *Engine) Library() *formula.Library {
	return e.library
}

type Detection struct {
	Notes []model.SoundingNote

	// PitchClasses are distinct, ordered by their lowest sounding note
	PitchClasses []model.PitchClass

	Lowest    model.SoundingNote
	HasLowest bool

	Ranked []model.RankedChord
	Labels []string
}

// Top returns at most n labels.
func (d Detection) Top(n int) []string {
	if n < 0 {
		n = 0
	}
	if len(d.Labels) < n {
		n = len(d.Labels)
	}
	return append([]string(nil), d.Labels[:n]...)
}

func (e *Engine) Analyze(board model.Fretboard) Detection {
	return e.AnalyzeNotes(e.mapper.SoundingNotes(board))
}

// AnalyzeNotes works on notes from any source; String and Fret only break
// ties when two notes share a MIDI number.
func (e *Engine) AnalyzeNotes(notes []model.SoundingNote) Detection {
	var det Detection
	for _, n := range notes {
		pc, err := pitch.Normalize(string(n.PitchClass))
		if err != nil {
			e.logger.Debug("skipping note", zap.String("pitch_class", string(n.PitchClass)), zap.Error(err))
			continue
		}
		n.PitchClass = pc
		det.Notes = append(det.Notes, n)
	}

	reps := representatives(det.Notes)
	for _, n := range reps {
		det.PitchClasses = append(det.PitchClasses, n.PitchClass)
	}
	if len(reps) > 0 {
		// reps[0] is the lowest note overall
		det.Lowest = reps[0]
		det.HasLowest = true
	}

	if len(det.PitchClasses) < 2 {
		return det
	}

	candidates := e.candidates(det.PitchClasses)
	det.Ranked = e.rank(candidates, det.PitchClasses, det.Lowest.PitchClass)
	det.Labels = e.labels(det.Ranked, det.PitchClasses)

	e.logger.Debug("detected chords",
		zap.Int("notes", len(det.Notes)),
		zap.Int("candidates", len(candidates)),
		zap.Strings("labels", det.Labels),
	)
	return det
}

// representatives keeps one note per pitch class: the lowest pitched one,
// then the lowest string index. The result is ordered the same way.
func representatives(notes []model.SoundingNote) []model.SoundingNote {
	sorted := append([]model.SoundingNote(nil), notes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Midi != sorted[j].Midi {
			return sorted[i].Midi < sorted[j].Midi
		}
		return sorted[i].String < sorted[j].String
	})

	seen := make(map[model.PitchClass]bool)
	var res []model.SoundingNote
	for _, n := range sorted {
		if seen[n.PitchClass] {
			continue
		}
		seen[n.PitchClass] = true
		res = append(res, n)
	}
	return res
}

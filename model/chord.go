package model

// PitchClass is a canonical, sharp-spelled note name ("C", "C#", ... "B").
type PitchClass string

type ChordFormula struct {
	Name string

	// Intervals from the root in tonal notation, including "1P".
	Intervals []string
	Optional  []string
	Aliases   []string
}

// Symbol returns the suffix used when naming a chord built from f.
func (f ChordFormula) Symbol() string {
	if len(f.Aliases) > 0 {
		return f.Aliases[0]
	}
	return f.Name
}

func (f ChordFormula) IsOptional(interval string) bool {
	for _, o := range f.Optional {
		if o == interval {
			return true
		}
	}
	return false
}

type CandidateSource uint8

const (
	SourceLibrary CandidateSource = iota
	SourceDictionary
)

func (s CandidateSource) String() string {
	switch s {
	case SourceLibrary:
		return "library"
	case SourceDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

type ChordCandidate struct {
	Root PitchClass

	// Symbol is the undecorated name used for deduplication, Label is what gets shown.
	Symbol string
	Label  string

	// Formula is empty for dictionary candidates
	Formula    string
	Intervals  []string
	Completion float64
	Source     CandidateSource
}

type RankedChord struct {
	ChordCandidate

	// NOTE: only meaningful for ordering
	Score float64
}

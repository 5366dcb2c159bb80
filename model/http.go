package model

// DetectRequestBody carries one fret per string, highest string first.
// A slice so that missing values are not read as open strings.
type DetectRequestBody struct {
	Frets []int `json:"frets"`
}

type NoteResult struct {
	String     int        `json:"string"`
	Fret       int        `json:"fret"`
	PitchClass PitchClass `json:"pitch_class"`
	Midi       int        `json:"midi"`
}

type ChordResult struct {
	Label      string     `json:"label"`
	Symbol     string     `json:"symbol"`
	Root       PitchClass `json:"root"`
	Score      float64    `json:"score"`
	Completion float64    `json:"completion"`
	Source     string     `json:"source"`
}

type DetectResponse struct {
	Notes        []NoteResult  `json:"notes"`
	PitchClasses []PitchClass  `json:"pitch_classes"`
	Lowest       *NoteResult   `json:"lowest,omitempty"`
	Chords       []ChordResult `json:"chords"`
	Labels       []string      `json:"labels"`
	Top          []string      `json:"top"`
}

// VoicingRequestBody accepts either Root+Formula, a chord Symbol ("Am7"),
// or an explicit list of Notes. The first one present wins in that order.
type VoicingRequestBody struct {
	Root    string   `json:"root,omitempty"`
	Formula string   `json:"formula,omitempty"`
	Symbol  string   `json:"symbol,omitempty"`
	Notes   []string `json:"notes,omitempty"`
}

type VoicingResponse struct {
	Frets Fretboard    `json:"frets"`
	Notes []PitchClass `json:"notes"`
}

type FormulaResult struct {
	Name      string   `json:"name"`
	Intervals []string `json:"intervals"`
	Optional  []string `json:"optional"`
	Aliases   []string `json:"aliases"`
}

type FretSummary struct {
	String string `json:"string"`
	Fret   int    `json:"fret"`
}

type ChordSummary struct {
	Label string        `json:"label"`
	Notes []string      `json:"notes"`
	Frets []FretSummary `json:"frets"`
}

type InsightResponse struct {
	Insight string   `json:"insight"`
	Tips    []string `json:"tips"`
}

type ProgressionRequestBody struct {
	Progression []ChordSummary `json:"progression"`
}

type ProgressionSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ProgressionResponse struct {
	Suggestions []ProgressionSuggestion `json:"suggestions"`
}

type PracticeResponse struct {
	Prompt string `json:"prompt"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

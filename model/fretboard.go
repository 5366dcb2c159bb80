package model

type OpenString struct {
	PitchClass PitchClass
	Midi       int
}

// Tuning lists open strings from highest (index 0) to lowest.
type Tuning = [6]OpenString

// Fretboard holds one fret per string, -1 meaning muted.
type Fretboard = [6]int

type SoundingNote struct {
	// String and Fret are -1 for notes that did not come from a fretboard
	String     int
	Fret       int
	PitchClass PitchClass
	Midi       int
}

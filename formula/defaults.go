package formula

import "github.com/jsphweid/fretnot/model"

// Triads have no optional members so two notes never match them. The fifth
// is optional in everything with a seventh, sixth or added tone.
var defaultFormulas = []model.ChordFormula{
	{Name: "Major", Intervals: []string{"1P", "3M", "5P"}, Aliases: []string{"maj", "M"}},
	{Name: "Minor", Intervals: []string{"1P", "3m", "5P"}, Aliases: []string{"m", "min"}},
	{Name: "Diminished", Intervals: []string{"1P", "3m", "5d"}, Aliases: []string{"dim", "o"}},
	{Name: "Augmented", Intervals: []string{"1P", "3M", "5A"}, Aliases: []string{"aug", "+"}},
	{Name: "Suspended 2", Intervals: []string{"1P", "2M", "5P"}, Aliases: []string{"sus2"}},
	{Name: "Suspended 4", Intervals: []string{"1P", "4P", "5P"}, Aliases: []string{"sus4", "sus"}},
	{Name: "Power", Intervals: []string{"1P", "5P"}, Aliases: []string{"5"}},
	{Name: "Dominant 7", Intervals: []string{"1P", "3M", "5P", "7m"}, Optional: []string{"5P"}, Aliases: []string{"7", "dom7"}},
	{Name: "Major 7", Intervals: []string{"1P", "3M", "5P", "7M"}, Optional: []string{"5P"}, Aliases: []string{"maj7", "M7"}},
	{Name: "Minor 7", Intervals: []string{"1P", "3m", "5P", "7m"}, Optional: []string{"5P"}, Aliases: []string{"m7", "min7"}},
	{Name: "Half Diminished", Intervals: []string{"1P", "3m", "5d", "7m"}, Aliases: []string{"m7b5", "ø"}},
	{Name: "Diminished 7", Intervals: []string{"1P", "3m", "5d", "7d"}, Aliases: []string{"dim7", "o7"}},
	{Name: "Major 6", Intervals: []string{"1P", "3M", "5P", "6M"}, Optional: []string{"5P"}, Aliases: []string{"maj6", "6"}},
	{Name: "Minor 6", Intervals: []string{"1P", "3m", "5P", "6M"}, Optional: []string{"5P"}, Aliases: []string{"m6", "min6"}},
	{Name: "Add 9", Intervals: []string{"1P", "3M", "5P", "9M"}, Optional: []string{"5P"}, Aliases: []string{"add9"}},
	{Name: "Dominant 9", Intervals: []string{"1P", "3M", "5P", "7m", "9M"}, Optional: []string{"5P"}, Aliases: []string{"9"}},
}

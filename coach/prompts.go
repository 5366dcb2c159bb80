package coach

import (
	"fmt"
	"strings"

	"github.com/jsphweid/fretnot/model"
)

func insightPrompt(s model.ChordSummary) string {
	positions := make([]string, len(s.Frets))
	for i, f := range s.Frets {
		positions[i] = fmt.Sprintf("%s string @ fret %d", f.String, f.Fret)
	}

	return fmt.Sprintf(`
You are an expert guitar instructor. Provide an encouraging, precise explanation
of this voicing for intermediate players.

Chord: %s
Notes: %s
Fretboard positions: %s

Reply in JSON: {"insight": "<120 word description>","tips":["tip1","tip2"]}.
`, s.Label, strings.Join(s.Notes, ", "), strings.Join(positions, "; "))
}

func progressionPrompt(progression []model.ChordSummary) string {
	steps := make([]string, len(progression))
	for i, c := range progression {
		steps[i] = fmt.Sprintf("%d. %s (%s)", i+1, c.Label, strings.Join(c.Notes, ","))
	}

	return fmt.Sprintf(`
You are a reharmonisation assistant. Suggest two chords that could follow this progression.

Progression: %s

Return JSON:
{
  "suggestions": [
    {"name":"Suggested chord","reason":"why it works"},
    {"name":"Another chord","reason":"explain tension/resolution"}
  ]
}
Limit responses to 50 words of explanation each.
`, strings.Join(steps, " | "))
}

func practicePrompt(s model.ChordSummary) string {
	frets := make([]string, len(s.Frets))
	for i, f := range s.Frets {
		frets[i] = fmt.Sprintf("%s@%d", f.String, f.Fret)
	}

	return fmt.Sprintf(`
Create a short practice assignment for this chord. Mention target tempo and technique focus.
Chord: %s; Notes: %s; Frets: %s

Return JSON: {"prompt":"two sentences with actionable guidance"}.
`, s.Label, strings.Join(s.Notes, ", "), strings.Join(frets, " "))
}

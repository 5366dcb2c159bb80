// Package coach asks a text model to explain voicings and suggest what to
// play next. Replies are expected as JSON but free text is tolerated.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/jsphweid/fretnot/fretboard"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"github.com/jsphweid/fretnot/util"
	"go.uber.org/zap"
)

// FallbackSuggestion names the suggestion returned when a progression reply
// cannot be parsed. The raw reply becomes its reason.
const FallbackSuggestion = "Try modal interchange"

var ErrEmptyProgression = errors.New("coach: progression is empty")

type Coach struct {
	gen    Generator
	logger *zap.Logger
}

func New(gen Generator, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{gen: gen, logger: logger}
}

// Summarize describes a fretted chord the way the prompts expect: the
// distinct pitch classes in string order and each fretted string by the
// name of its open note.
func Summarize(m *fretboard.Mapper, board model.Fretboard, label string) model.ChordSummary {
	tuning := m.Tuning()
	summary := model.ChordSummary{Label: label, Notes: []string{}, Frets: []model.FretSummary{}}

	var pcs []string
	for _, n := range m.SoundingNotes(board) {
		pcs = append(pcs, string(n.PitchClass))
		summary.Frets = append(summary.Frets, model.FretSummary{
			String: pitch.NoteName(tuning[n.String].Midi),
			Fret:   n.Fret,
		})
	}
	summary.Notes = append(summary.Notes, util.Unique(pcs)...)
	return summary
}

func (c *Coach) Insight(ctx context.Context, summary model.ChordSummary) (model.InsightResponse, error) {
	text, err := c.gen.Generate(ctx, insightPrompt(summary))
	if err != nil {
		return model.InsightResponse{}, err
	}

	var parsed model.InsightResponse
	if parseJSON(text, &parsed) && parsed.Insight != "" {
		if parsed.Tips == nil {
			parsed.Tips = []string{}
		}
		return parsed, nil
	}
	c.logger.Debug("insight reply was not JSON", zap.String("label", summary.Label))
	return model.InsightResponse{Insight: text, Tips: []string{}}, nil
}

func (c *Coach) Progression(ctx context.Context, progression []model.ChordSummary) ([]model.ProgressionSuggestion, error) {
	if len(progression) == 0 {
		return nil, ErrEmptyProgression
	}

	text, err := c.gen.Generate(ctx, progressionPrompt(progression))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []model.ProgressionSuggestion `json:"suggestions"`
	}
	if parseJSON(text, &parsed) && parsed.Suggestions != nil {
		return parsed.Suggestions, nil
	}
	c.logger.Debug("progression reply was not JSON", zap.Int("chords", len(progression)))
	return []model.ProgressionSuggestion{{Name: FallbackSuggestion, Reason: text}}, nil
}

func (c *Coach) Practice(ctx context.Context, summary model.ChordSummary) (string, error) {
	text, err := c.gen.Generate(ctx, practicePrompt(summary))
	if err != nil {
		return "", err
	}

	var parsed struct {
		Prompt *string `json:"prompt"`
	}
	if parseJSON(text, &parsed) && parsed.Prompt != nil {
		return *parsed.Prompt, nil
	}
	c.logger.Debug("practice reply was not JSON", zap.String("label", summary.Label))
	return text, nil
}

var fence = regexp.MustCompile("(?i)```json")

func stripCodeFence(text string) string {
	text = fence.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ReplaceAll(text, "```", ""))
}

// parseJSON reports whether text, once fences are stripped, decodes into v.
func parseJSON(text string, v any) bool {
	return json.Unmarshal([]byte(stripCodeFence(text)), v) == nil
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/coach"
	"github.com/jsphweid/fretnot/constants"
	"github.com/jsphweid/fretnot/fretboard"
	"github.com/jsphweid/fretnot/model"
	"go.uber.org/zap"
)

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"coach":  s.coach != nil,
	})
}

func (s *Server) HandleFormulas(w http.ResponseWriter, r *http.Request) {
	formulas := s.engine.Library().All()
	res := make([]model.FormulaResult, len(formulas))
	for i, f := range formulas {
		res[i] = model.FormulaResult{
			Name:      f.Name,
			Intervals: f.Intervals,
			Optional:  nonNil(f.Optional),
			Aliases:   nonNil(f.Aliases),
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var input model.DetectRequestBody
	if !decode(w, r, &input) {
		return
	}
	board, err := s.toBoard(input.Frets)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	det := s.engine.Analyze(board)
	writeJSON(w, http.StatusOK, DetectionResponse(det, s.topN))
}

// toBoard accepts exactly one fret per string, each muted (-1) or within
// the mapper's fret window.
func (s *Server) toBoard(frets []int) (model.Fretboard, error) {
	board := fretboard.Muted()
	if len(frets) != len(board) {
		return board, fmt.Errorf("frets must have %d values, got %d", len(board), len(frets))
	}
	maxFret := s.engine.Mapper().MaxFret()
	for i, fret := range frets {
		if fret < constants.Muted || fret > maxFret {
			return board, fmt.Errorf("fret %d on string %d is outside [%d, %d]", fret, i, constants.Muted, maxFret)
		}
		board[i] = fret
	}
	return board, nil
}

// DetectionResponse renders det for the wire, listing at most topN labels
// under Top.
func DetectionResponse(det chord.Detection, topN int) model.DetectResponse {
	res := model.DetectResponse{
		Notes:        make([]model.NoteResult, len(det.Notes)),
		PitchClasses: nonNil(det.PitchClasses),
		Chords:       make([]model.ChordResult, len(det.Ranked)),
		Labels:       nonNil(det.Labels),
		Top:          nonNil(det.Top(topN)),
	}
	for i, n := range det.Notes {
		res.Notes[i] = noteResult(n)
	}
	if det.HasLowest {
		lowest := noteResult(det.Lowest)
		res.Lowest = &lowest
	}
	for i, c := range det.Ranked {
		res.Chords[i] = model.ChordResult{
			Label:      c.Label,
			Symbol:     c.Symbol,
			Root:       c.Root,
			Score:      c.Score,
			Completion: c.Completion,
			Source:     c.Source.String(),
		}
	}
	return res
}

func noteResult(n model.SoundingNote) model.NoteResult {
	return model.NoteResult{String: n.String, Fret: n.Fret, PitchClass: n.PitchClass, Midi: n.Midi}
}

func (s *Server) HandleVoicing(w http.ResponseWriter, r *http.Request) {
	var input model.VoicingRequestBody
	if !decode(w, r, &input) {
		return
	}

	mapper, lib := s.engine.Mapper(), s.engine.Library()
	var (
		board model.Fretboard
		notes []model.PitchClass
		err   error
	)
	switch {
	case input.Root != "" && input.Formula != "":
		f, ferr := lib.Get(input.Formula)
		if ferr != nil {
			err = ferr
			break
		}
		board, notes, err = mapper.VoiceFormula(input.Root, f)
	case input.Symbol != "":
		board, notes, err = mapper.VoiceSymbol(lib, input.Symbol)
	case len(input.Notes) > 0:
		board, notes, err = mapper.VoiceNotes(input.Notes)
	default:
		writeError(w, http.StatusBadRequest, "Provide root and formula, a symbol, or notes")
		return
	}

	if err != nil {
		s.logger.Debug("voicing failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, model.VoicingResponse{Frets: board, Notes: notes})
}

func (s *Server) coachAvailable(w http.ResponseWriter) bool {
	if s.coach == nil {
		writeError(w, http.StatusServiceUnavailable, coach.ErrNotConfigured.Error())
		return false
	}
	return true
}

func (s *Server) coachFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, coach.ErrEmptyProgression) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Warn("coach request failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, err.Error())
}

func (s *Server) HandleInsight(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w) {
		return
	}
	var input model.ChordSummary
	if !decode(w, r, &input) {
		return
	}
	res, err := s.coach.Insight(r.Context(), input)
	if err != nil {
		s.coachFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleProgression(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w) {
		return
	}
	var input model.ProgressionRequestBody
	if !decode(w, r, &input) {
		return
	}
	suggestions, err := s.coach.Progression(r.Context(), input.Progression)
	if err != nil {
		s.coachFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ProgressionResponse{Suggestions: suggestions})
}

func (s *Server) HandlePractice(w http.ResponseWriter, r *http.Request) {
	if !s.coachAvailable(w) {
		return
	}
	var input model.ChordSummary
	if !decode(w, r, &input) {
		return
	}
	prompt, err := s.coach.Practice(r.Context(), input)
	if err != nil {
		s.coachFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PracticeResponse{Prompt: prompt})
}

func nonNil[A any](items []A) []A {
	if items == nil {
		return []A{}
	}
	return items
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/coach"
	"github.com/jsphweid/fretnot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newServer(t *testing.T, gen coach.Generator) *Server {
	logger := zaptest.NewLogger(t)
	var c *coach.Coach
	if gen != nil {
		c = coach.New(gen, logger)
	}
	return New(chord.New(chord.WithLogger(logger)), c, 3, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", "")
	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`{"status":"ok","coach":false}`, w.Body.String())
	assert.NotEmpty(w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal("abc-123", rec.Header().Get(RequestIDHeader))
}

func TestFormulas(t *testing.T) {
	w := do(t, newServer(t, nil), http.MethodGet, "/formulas", "")
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeBody[[]model.FormulaResult](t, w)
	require.NotEmpty(t, res)
	assert.Equal(t, model.FormulaResult{
		Name:      "Major",
		Intervals: []string{"1P", "3M", "5P"},
		Optional:  []string{},
		Aliases:   []string{"maj", "M"},
	}, res[0])
}

func TestDetect(t *testing.T) {
	w := do(t, newServer(t, nil), http.MethodPost, "/detect", `{"frets":[0,1,0,2,3,-1]}`)
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeBody[model.DetectResponse](t, w)
	assert := assert.New(t)
	assert.Len(res.Notes, 5)
	assert.Equal([]model.PitchClass{"C", "E", "G"}, res.PitchClasses)
	require.NotNil(t, res.Lowest)
	assert.Equal(model.NoteResult{String: 4, Fret: 3, PitchClass: "C", Midi: 48}, *res.Lowest)
	assert.Equal([]string{"Cmaj", "C5", "Emb6"}, res.Top)
	require.NotEmpty(t, res.Chords)
	assert.Equal("Cmaj", res.Chords[0].Label)
	assert.Equal("library", res.Chords[0].Source)
}

func TestDetectMutedBoard(t *testing.T) {
	w := do(t, newServer(t, nil), http.MethodPost, "/detect", `{"frets":[-1,-1,-1,-1,-1,-1]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notes":[],"pitch_classes":[],"chords":[],"labels":[],"top":[]}`, w.Body.String())
}

func TestDetectRejectsBadInput(t *testing.T) {
	s := newServer(t, nil)

	w := do(t, s, http.MethodPost, "/detect", `{"frets":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[model.ErrorResponse](t, w).Error, "Could not unmarshal")

	w = do(t, s, http.MethodGet, "/detect", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// absent positions must not turn into open strings
	cases := map[string]string{
		"missing frets": `{}`,
		"empty frets":   `{"frets":[]}`,
		"short frets":   `{"frets":[3]}`,
		"long frets":    `{"frets":[0,1,0,2,3,-1,0]}`,
		"beyond window": `{"frets":[0,1,0,2,3,16]}`,
		"below muted":   `{"frets":[0,1,0,2,3,-2]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/detect", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeBody[model.ErrorResponse](t, w).Error)
		})
	}
}

func TestVoicing(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		frets model.Fretboard
		notes []model.PitchClass
	}{
		{"symbol", `{"symbol":"Am7"}`, model.Fretboard{8, 10, 0, 2, 3, 5}, []model.PitchClass{"A", "C", "E", "G"}},
		{"root and formula", `{"root":"E","formula":"Major"}`, model.Fretboard{7, 9, 9, 9, 11, 0}, []model.PitchClass{"E", "G#", "B"}},
		{"formula wins over symbol", `{"root":"E","formula":"maj","symbol":"Am7"}`, model.Fretboard{7, 9, 9, 9, 11, 0}, []model.PitchClass{"E", "G#", "B"}},
		{"notes", `{"notes":["A","C","E"]}`, model.Fretboard{0, 1, 2, 2, 3, 5}, []model.PitchClass{"A", "C", "E"}},
	}

	s := newServer(t, nil)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/voicing", c.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			res := decodeBody[model.VoicingResponse](t, w)
			assert.Equal(t, c.frets, res.Frets)
			assert.Equal(t, c.notes, res.Notes)
		})
	}
}

func TestVoicingErrors(t *testing.T) {
	cases := map[string]struct {
		body   string
		status int
	}{
		"nothing to voice": {`{}`, http.StatusBadRequest},
		"bad json":         {`[`, http.StatusBadRequest},
		"unknown formula":  {`{"root":"C","formula":"quartal"}`, http.StatusUnprocessableEntity},
		"bad root":         {`{"root":"X","formula":"Major"}`, http.StatusUnprocessableEntity},
		"unknown symbol":   {`{"symbol":"Cquartal"}`, http.StatusUnprocessableEntity},
		"no valid notes":   {`{"notes":["H"]}`, http.StatusUnprocessableEntity},
	}

	s := newServer(t, nil)
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/voicing", c.body)
			assert.Equal(t, c.status, w.Code)
			assert.NotEmpty(t, decodeBody[model.ErrorResponse](t, w).Error)
		})
	}
}

const summary = `{"label":"Cmaj","notes":["E","C","G"],"frets":[{"string":"A2","fret":3}]}`

func TestCoachNotConfigured(t *testing.T) {
	s := newServer(t, nil)
	for _, path := range []string{"/coach/insight", "/coach/progression", "/coach/practice"} {
		w := do(t, s, http.MethodPost, path, summary)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestCoachRoutes(t *testing.T) {
	answers := map[string]string{
		"expert guitar instructor": `{"insight":"Open and ringing.","tips":["arch your fingers"]}`,
		"reharmonisation":          `{"suggestions":[{"name":"Am","reason":"relative minor"}]}`,
		"practice assignment":      `{"prompt":"Play it at 60 bpm."}`,
	}
	gen := coach.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		for marker, answer := range answers {
			if strings.Contains(prompt, marker) {
				return answer, nil
			}
		}
		return "", errors.New("unexpected prompt")
	})
	s := newServer(t, gen)

	w := do(t, s, http.MethodPost, "/coach/insight", summary)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.InsightResponse{Insight: "Open and ringing.", Tips: []string{"arch your fingers"}},
		decodeBody[model.InsightResponse](t, w))

	w = do(t, s, http.MethodPost, "/coach/progression", `{"progression":[`+summary+`]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ProgressionResponse{Suggestions: []model.ProgressionSuggestion{{Name: "Am", Reason: "relative minor"}}},
		decodeBody[model.ProgressionResponse](t, w))

	w = do(t, s, http.MethodPost, "/coach/practice", summary)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Play it at 60 bpm.", decodeBody[model.PracticeResponse](t, w).Prompt)

	w = do(t, s, http.MethodPost, "/coach/progression", `{"progression":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoachFailureIsBadGateway(t *testing.T) {
	gen := coach.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	w := do(t, newServer(t, gen), http.MethodPost, "/coach/insight", summary)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeBody[model.ErrorResponse](t, w).Error, "quota exceeded")
}

func TestCORS(t *testing.T) {
	h := newServer(t, nil).Handler("https://fretnot.example")

	req := httptest.NewRequest(http.MethodPost, "/detect", bytes.NewReader([]byte(`{"frets":[0,0,0,0,0,0]}`)))
	req.Header.Set("Origin", "https://fretnot.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://fretnot.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/detect", bytes.NewReader([]byte(`{"frets":[0,0,0,0,0,0]}`)))
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/fretnot/fretboard"
	"github.com/jsphweid/fretnot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func midiOf(notes []model.SoundingNote) []int {
	res := make([]int, len(notes))
	for i, n := range notes {
		res[i] = n.Midi
	}
	return res
}

func openE() []model.SoundingNote {
	return fretboard.Default().SoundingNotes(model.Fretboard{0, 0, 1, 2, 2, 0})
}

func TestWriteChordRoundTrip(t *testing.T) {
	opts := DefaultStrumOptions()
	opts.StrumTicks = 0

	var buf bytes.Buffer
	require.NoError(t, WriteChord(&buf, openE(), opts))

	s, err := Read(&buf)
	require.NoError(t, err)

	onsets := GetChords(s)
	require.Len(t, onsets, 1)
	assert.Equal(t, int64(0), onsets[0].Offset)
	assert.Equal(t, []int{40, 47, 52, 56, 59, 64}, midiOf(onsets[0].Notes))
	assert.Equal(t, model.PitchClass("G#"), onsets[0].Notes[3].PitchClass)
	assert.Equal(t, -1, onsets[0].Notes[0].String)
}

func TestStrumBuildsUpFromTheBass(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChord(&buf, openE(), DefaultStrumOptions()))

	s, err := Read(&buf)
	require.NoError(t, err)

	onsets := GetChords(s)
	require.Len(t, onsets, 6)
	assert.Equal(t, []int{40}, midiOf(onsets[0].Notes))
	assert.Equal(t, []int{40, 47}, midiOf(onsets[1].Notes))
	assert.Equal(t, []int{40, 47, 52, 56, 59, 64}, midiOf(onsets[5].Notes))
	for i := 1; i < len(onsets); i++ {
		assert.Greater(t, onsets[i].Offset, onsets[i-1].Offset)
	}
}

func TestWriteChordRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteChord(&buf, nil, DefaultStrumOptions()), ErrEmptyChord)
	assert.Zero(t, buf.Len())
}

func TestGetChordsAcrossTracks(t *testing.T) {
	// C major for one beat, then F major; the F lives on a second track
	var melody, bass smf.Track
	melody.Add(0, gomidi.NoteOn(0, 64, 100))
	melody.Add(0, gomidi.NoteOn(0, 67, 100))
	melody.Add(960, gomidi.NoteOff(0, 64))
	melody.Add(0, gomidi.NoteOn(0, 67, 0))
	melody.Add(0, gomidi.NoteOn(0, 65, 100))
	melody.Add(0, gomidi.NoteOn(0, 69, 100))
	melody.Add(960, gomidi.NoteOff(0, 65))
	melody.Add(0, gomidi.NoteOff(0, 69))
	melody.Close(0)

	bass.Add(0, gomidi.NoteOn(1, 48, 100))
	bass.Add(960, gomidi.NoteOff(1, 48))
	bass.Add(0, gomidi.NoteOn(1, 53, 100))
	bass.Add(960, gomidi.NoteOff(1, 53))
	bass.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	require.NoError(t, s.Add(melody))
	require.NoError(t, s.Add(bass))

	onsets := GetChords(s)
	require.Len(t, onsets, 2)
	assert.Equal(t, []int{48, 64, 67}, midiOf(onsets[0].Notes))
	assert.Equal(t, []int{53, 65, 69}, midiOf(onsets[1].Notes))
	assert.Equal(t, int64(500000), onsets[1].Offset)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteChord(f, openE(), DefaultStrumOptions()))
	require.NoError(t, f.Close())

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, GetChords(s))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte("not a midi file")))
	assert.Error(t, err)
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	assert := assert.New(t)
	assert.True(tr.Handle(gomidi.NoteOn(0, 64, 80)))
	assert.True(tr.Handle(gomidi.NoteOn(0, 60, 80)))
	assert.False(tr.Handle(gomidi.NoteOn(0, 60, 80)))
	assert.Equal([]int{60, 64}, midiOf(tr.Notes()))

	assert.True(tr.Handle(gomidi.NoteOn(0, 64, 0)))
	assert.False(tr.Handle(gomidi.NoteOff(0, 62)))
	assert.False(tr.Handle(gomidi.ControlChange(0, 64, 127)))
	assert.Equal([]int{60}, midiOf(tr.Notes()))

	assert.True(tr.Handle(gomidi.NoteOff(0, 60)))
	assert.Empty(tr.Notes())
}

func TestGatherPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.MIDI", "notes.txt", "sub/c.mid"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	paths, err := GatherPaths(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mid"),
		filepath.Join(dir, "b.MIDI"),
		filepath.Join(dir, "sub", "c.mid"),
	}, paths)

	paths, err = GatherPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	single := filepath.Join(dir, "notes.txt")
	paths, err = GatherPaths(single, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, paths)

	_, err = GatherPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(t, err)
}

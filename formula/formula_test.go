package formula

import (
	"testing"

	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/pitch"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLibraryIsWellFormed(t *testing.T) {
	lib := Default()
	assert := assert.New(t)
	assert.GreaterOrEqual(lib.Len(), 15)

	symbols := make(map[string]bool)
	for _, f := range lib.All() {
		assert.NotEmpty(f.Name)
		assert.Equal("1P", f.Intervals[0], f.Name)
		assert.NotContains(f.Optional, "1P", f.Name)
		assert.NotEmpty(Essential(f), f.Name)

		for _, interval := range f.Intervals {
			_, err := pitch.Semitones(interval)
			assert.NoError(err, f.Name)
		}
		for _, o := range f.Optional {
			assert.Contains(f.Intervals, o, f.Name)
		}

		assert.False(symbols[f.Symbol()], "duplicate symbol %q", f.Symbol())
		symbols[f.Symbol()] = true
	}
}

func TestGetByNameAndAlias(t *testing.T) {
	lib := Default()
	assert := assert.New(t)

	f, err := lib.Get("Major")
	assert.NoError(err)
	assert.Equal([]string{"1P", "3M", "5P"}, f.Intervals)

	f, err = lib.Get("dominant 7")
	assert.NoError(err)
	assert.Equal("7", f.Symbol())

	f, err = lib.Get("m7")
	assert.NoError(err)
	assert.Equal("Minor 7", f.Name)

	f, err = lib.Get("M")
	assert.NoError(err)
	assert.Equal("Major", f.Name)

	_, err = lib.Get("lydian dominant")
	assert.ErrorIs(err, ErrUnknownFormula)
}

func TestEssentialSkipsRootAndOptional(t *testing.T) {
	f := model.ChordFormula{
		Name:      "Dominant 7",
		Intervals: []string{"1P", "3M", "5P", "7m"},
		Optional:  []string{"5P"},
	}
	assert.Equal(t, []string{"3M", "7m"}, Essential(f))
}

func TestLibraryIsNotAliasedToCallerSlices(t *testing.T) {
	formulas := []model.ChordFormula{{Name: "Major", Intervals: []string{"1P", "3M", "5P"}}}
	lib := New(formulas)
	formulas[0].Intervals[1] = "3m"

	got := lib.All()
	got[0].Intervals[2] = "5A"

	f, err := lib.Get("Major")
	assert.NoError(t, err)
	assert.Equal(t, []string{"1P", "3M", "5P"}, f.Intervals)
}

package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/jsphweid/fretnot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettledReportsOnlyTheLastChange(t *testing.T) {
	got := make(chan []model.SoundingNote, 4)
	onChange := settled(context.Background(), 20*time.Millisecond, func(notes []model.SoundingNote) {
		got <- notes
	})

	onChange([]model.SoundingNote{{Midi: 48}})
	onChange([]model.SoundingNote{{Midi: 48}, {Midi: 52}})

	select {
	case notes := <-got:
		assert.Len(t, notes, 2)
	case <-time.After(time.Second):
		require.Fail(t, "settled never fired")
	}

	select {
	case <-got:
		assert.Fail(t, "fired more than once")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestSettledIsSilentAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []model.SoundingNote, 1)
	onChange := settled(ctx, 20*time.Millisecond, func(notes []model.SoundingNote) {
		got <- notes
	})

	onChange([]model.SoundingNote{{Midi: 48}})
	cancel()

	select {
	case <-got:
		assert.Fail(t, "fired after the listener stopped")
	case <-time.After(100 * time.Millisecond):
	}
}

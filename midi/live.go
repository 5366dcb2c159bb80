package midi

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsphweid/fretnot/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"
)

// Tracker keeps the set of keys currently held on a live input. It is safe
// for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	pressed map[uint8]bool
}

func NewTracker() *Tracker {
	return &Tracker{pressed: make(map[uint8]bool)}
}

// Handle applies msg and reports whether the held set changed.
func (t *Tracker) Handle(msg gomidi.Message) bool {
	var ch, key, vel uint8
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if t.pressed[key] {
			return false
		}
		t.pressed[key] = true
		return true
	case msg.GetNoteEnd(&ch, &key):
		if !t.pressed[key] {
			return false
		}
		delete(t.pressed, key)
		return true
	}
	return false
}

func (t *Tracker) Notes() []model.SoundingNote {
	t.mu.Lock()
	defer t.mu.Unlock()
	return keysToNotes(t.pressed)
}

// Listen follows input port number port until ctx is done, calling onChange
// with the held notes every time they change. The driver must already be
// registered by the caller.
func Listen(ctx context.Context, port int, onChange func([]model.SoundingNote), logger *zap.Logger) error {
	in, err := gomidi.InPort(port)
	if err != nil {
		return fmt.Errorf("can't find midi input %d: %w", port, err)
	}
	logger.Info("listening for midi", zap.String("port", in.String()))

	tracker := NewTracker()
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if tracker.Handle(msg) {
			onChange(tracker.Notes())
		}
	}, gomidi.HandleError(func(err error) {
		logger.Warn("midi listener error", zap.Error(err))
	}))
	if err != nil {
		return fmt.Errorf("failed to listen to %s: %w", in.String(), err)
	}
	defer stop()

	<-ctx.Done()
	return nil
}

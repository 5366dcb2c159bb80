package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/fretnot/midi"
	"github.com/jsphweid/fretnot/model"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	listenPort     int
	listenDebounce time.Duration
	listenList     bool
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "MIDI input port number")
	listenCmd.Flags().DurationVar(&listenDebounce, "debounce", 80*time.Millisecond, "wait this long after the last key change before naming the chord")
	listenCmd.Flags().BoolVar(&listenList, "list", false, "list input ports and exit")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI keyboard or guitar controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()

		out := cmd.OutOrStdout()
		if listenList {
			for i, in := range gomidi.GetInPorts() {
				fmt.Fprintf(out, "%d: %s\n", i, in.String())
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine := newEngine()
		onChange := settled(ctx, listenDebounce, func(notes []model.SoundingNote) {
			printDetection(out, engine.AnalyzeNotes(notes), cfg.Engine.TopN)
		})
		return midi.Listen(ctx, listenPort, onChange, logger)
	},
}

// settled calls fn with the latest notes once they have stopped changing
// for d, since a chord is rolled one key at a time. Nothing fires once ctx
// is done, so a pending call cannot outlive the driver.
func settled(ctx context.Context, d time.Duration, fn func([]model.SoundingNote)) func([]model.SoundingNote) {
	debounced := debounce.New(d)
	return func(notes []model.SoundingNote) {
		debounced(func() {
			if ctx.Err() != nil {
				return
			}
			fn(notes)
		})
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/fretnot/midi"
	"github.com/jsphweid/fretnot/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	voiceOut   string
	voiceNotes bool
)

func init() {
	voiceCmd.Flags().StringVarP(&voiceOut, "out", "o", "", "also write the voicing as a strummed chord to this .mid file")
	voiceCmd.Flags().BoolVar(&voiceNotes, "notes", false, "treat the arguments as a list of note names")
	rootCmd.AddCommand(voiceCmd)
}

var voiceCmd = &cobra.Command{
	Use:   "voice <symbol> | <root> <formula> | --notes <note>...",
	Short: "Places a chord on the fretboard",
	Long: `Places a chord on the fretboard, one note per string from the low E up.

  fretnot voice Am7
  fretnot voice E Major
  fretnot voice --notes C E G Bb`,
	Args: cobra.RangeArgs(1, 12),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		mapper, lib := engine.Mapper(), engine.Library()

		var (
			board model.Fretboard
			notes []model.PitchClass
			err   error
		)
		switch {
		case voiceNotes:
			board, notes, err = mapper.VoiceNotes(args)
		case len(args) == 1:
			board, notes, err = mapper.VoiceSymbol(lib, args[0])
		case len(args) == 2:
			f, ferr := lib.Get(args[1])
			if ferr != nil {
				return ferr
			}
			board, notes, err = mapper.VoiceFormula(args[0], f)
		default:
			return fmt.Errorf("expected a symbol or a root and formula, got %d arguments", len(args))
		}
		if err != nil {
			return err
		}

		names := make([]string, len(notes))
		for i, n := range notes {
			names[i] = string(n)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "frets: %s\n", formatBoard(board))
		fmt.Fprintf(out, "notes: %s\n", strings.Join(names, " "))

		if voiceOut == "" {
			return nil
		}
		f, err := os.Create(voiceOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := midi.WriteChord(f, mapper.SoundingNotes(board), midi.DefaultStrumOptions()); err != nil {
			return err
		}
		logger.Info("wrote voicing", zap.String("path", voiceOut))
		return f.Close()
	},
}

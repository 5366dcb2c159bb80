package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/constants"
	"github.com/jsphweid/fretnot/model"
	"github.com/jsphweid/fretnot/server"
	"github.com/spf13/cobra"
)

var (
	detectJSON bool
	detectAll  bool
)

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print the full detection as JSON")
	detectCmd.Flags().BoolVar(&detectAll, "all", false, "print every label, not just the top ones")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <e> <B> <G> <D> <A> <E>",
	Short: "Names the chord made by six frets",
	Long: `Names the chord made by six frets, given from the high E string down.
Use x for a muted string (or -1 after a -- separator).

  fretnot detect 0 1 0 2 3 x`,
	Args: cobra.ExactArgs(constants.NumStrings),
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := parseBoard(args)
		if err != nil {
			return err
		}

		det := newEngine().Analyze(board)
		if detectJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(server.DetectionResponse(det, cfg.Engine.TopN))
		}

		n := cfg.Engine.TopN
		if detectAll {
			n = len(det.Labels)
		}
		printDetection(cmd.OutOrStdout(), det, n)
		return nil
	},
}

func parseBoard(args []string) (model.Fretboard, error) {
	var board model.Fretboard
	if len(args) != len(board) {
		return board, fmt.Errorf("need %d frets, got %d", len(board), len(args))
	}
	for i, arg := range args {
		if strings.EqualFold(arg, "x") {
			board[i] = constants.Muted
			continue
		}
		fret, err := strconv.Atoi(arg)
		if err != nil {
			return board, fmt.Errorf("fret %d: %q is not a number or x", i, arg)
		}
		if fret < 0 {
			fret = constants.Muted
		}
		board[i] = fret
	}
	return board, nil
}

func formatBoard(board model.Fretboard) string {
	parts := make([]string, len(board))
	for i, fret := range board {
		if fret < 0 {
			parts[i] = "x"
		} else {
			parts[i] = strconv.Itoa(fret)
		}
	}
	return strings.Join(parts, " ")
}

func printDetection(w io.Writer, det chord.Detection, n int) {
	pcs := make([]string, len(det.PitchClasses))
	for i, pc := range det.PitchClasses {
		pcs[i] = string(pc)
	}
	fmt.Fprintf(w, "notes: %s\n", strings.Join(pcs, " "))

	top := det.Top(n)
	if len(top) == 0 {
		fmt.Fprintln(w, "chord: none")
		return
	}
	fmt.Fprintf(w, "chord: %s\n", strings.Join(top, ", "))
}

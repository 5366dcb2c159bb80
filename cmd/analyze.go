package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/midi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeReport bool
	analyzeMax    int
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "print a summary of the most common chords instead of a timeline")
	analyzeCmd.Flags().IntVar(&analyzeMax, "max", 0, "stop after this many files (0 for all)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file or dir>...",
	Short: "Names the chords in MIDI files",
	Long: `Names the chord held at every point a MIDI file changes what is held.
Directories are searched for .mid and .midi files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var paths []string
		for _, arg := range args {
			found, err := midi.GatherPaths(arg, analyzeMax)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
		if analyzeMax > 0 && len(paths) > analyzeMax {
			paths = paths[:analyzeMax]
		}

		engine := newEngine()
		out := cmd.OutOrStdout()
		rep := report{counts: make(map[string]int)}
		for _, path := range paths {
			s, err := midi.ReadFile(path)
			if err != nil {
				logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
				rep.skipped++
				continue
			}
			rep.files++

			if !analyzeReport {
				fmt.Fprintf(out, "%s\n", path)
			}
			for _, onset := range midi.GetChords(s) {
				det := engine.AnalyzeNotes(onset.Notes)
				rep.add(det)
				if !analyzeReport {
					printOnset(out, onset.Offset, det, cfg.Engine.TopN)
				}
			}
		}

		if analyzeReport {
			rep.print(out, 10)
		}
		return nil
	},
}

func printOnset(w io.Writer, offset int64, det chord.Detection, n int) {
	pcs := make([]string, len(det.PitchClasses))
	for i, pc := range det.PitchClasses {
		pcs[i] = string(pc)
	}
	labels := "-"
	if top := det.Top(n); len(top) > 0 {
		labels = strings.Join(top, ", ")
	}
	fmt.Fprintf(w, "%9.3fs  %-20s %s\n", float64(offset)/1e6, strings.Join(pcs, " "), labels)
}

type report struct {
	files   int
	skipped int
	onsets  int
	named   int
	counts  map[string]int
}

// add counts det under its best label.
func (r *report) add(det chord.Detection) {
	r.onsets++
	if top := det.Top(1); len(top) == 1 {
		r.named++
		r.counts[top[0]]++
	}
}

type labelCount struct {
	label string
	count int
}

func (r *report) top(n int) []labelCount {
	res := make([]labelCount, 0, len(r.counts))
	for label, count := range r.counts {
		res = append(res, labelCount{label, count})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].count != res[j].count {
			return res[i].count > res[j].count
		}
		return res[i].label < res[j].label
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func (r *report) print(w io.Writer, n int) {
	fmt.Fprintf(w, "files: %d (%d skipped)\n", r.files, r.skipped)
	fmt.Fprintf(w, "onsets: %d, named: %d\n", r.onsets, r.named)
	for _, lc := range r.top(n) {
		fmt.Fprintf(w, "%6d  %s\n", lc.count, lc.label)
	}
}

package cmd

import (
	"context"
	"fmt"

	"github.com/jsphweid/fretnot/coach"
	"github.com/jsphweid/fretnot/constants"
	"github.com/jsphweid/fretnot/model"
	"github.com/spf13/cobra"
)

// newCoach returns coach.ErrNotConfigured when no API key is set.
func newCoach(ctx context.Context) (*coach.Coach, error) {
	gen, err := coach.NewGeminiGenerator(ctx, cfg.Coach, logger)
	if err != nil {
		return nil, err
	}
	return coach.New(gen, logger), nil
}

func init() {
	coachCmd.AddCommand(insightCmd, practiceCmd)
	rootCmd.AddCommand(coachCmd)
}

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Asks Gemini about a voicing (needs GEMINI_API_KEY)",
}

var insightCmd = &cobra.Command{
	Use:   "insight <e> <B> <G> <D> <A> <E>",
	Short: "Explains a voicing",
	Args:  cobra.ExactArgs(constants.NumStrings),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := summarizeArgs(args)
		if err != nil {
			return err
		}
		c, err := newCoach(cmd.Context())
		if err != nil {
			return err
		}

		res, err := c.Insight(cmd.Context(), summary)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Insight)
		for _, tip := range res.Tips {
			fmt.Fprintf(out, "  - %s\n", tip)
		}
		return nil
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice <e> <B> <G> <D> <A> <E>",
	Short: "Suggests a short practice assignment for a voicing",
	Args:  cobra.ExactArgs(constants.NumStrings),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := summarizeArgs(args)
		if err != nil {
			return err
		}
		c, err := newCoach(cmd.Context())
		if err != nil {
			return err
		}

		prompt, err := c.Practice(cmd.Context(), summary)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func summarizeArgs(args []string) (model.ChordSummary, error) {
	board, err := parseBoard(args)
	if err != nil {
		return model.ChordSummary{}, err
	}
	engine := newEngine()
	label := "unknown"
	if top := engine.Analyze(board).Top(1); len(top) == 1 {
		label = top[0]
	}
	return coach.Summarize(engine.Mapper(), board, label), nil
}

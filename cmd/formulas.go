package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formulasCmd)
}

var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "Lists the chord formulas the engine knows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tINTERVALS\tOPTIONAL\tALIASES")
		for _, f := range newEngine().Library().All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.Name,
				strings.Join(f.Intervals, " "),
				strings.Join(f.Optional, " "),
				strings.Join(f.Aliases, ", "),
			)
		}
		return w.Flush()
	},
}

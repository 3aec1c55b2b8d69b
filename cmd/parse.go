package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jbqwizera/pipesh/core/shell"
)

var (
	parseNoGlob bool
	parseLimit  int
)

// parseCmd is a diagnostic: it shows what the shell would make of a line
// without running anything.
var parseCmd = &cobra.Command{
	Use:   "parse LINE...",
	Short: "Tokenize and parse lines without executing them.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		out := cmd.OutOrStdout()

		var expander shell.Expander = shell.NewGlobExpander(afero.NewOsFs())
		if parseNoGlob {
			expander = shell.IdentityExpander{}
		}

		for _, line := range args {
			tokens, err := shell.Tokenize(line)
			if err != nil {
				return err
			}
			tokens.ForEach(func(_ int, tok shell.Token) {
				fmt.Fprintln(out, tok)
			})

			pipeline, err := shell.Parse(tokens, expander)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "pipeline: %s\n", pipeline.Render(parseLimit))
			fmt.Fprintf(out, "commands: %d pipes: %d nodes: %d\n",
				pipeline.CountCommands(), pipeline.CountPipes(), pipeline.CountNodes())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseNoGlob, "no-glob", false, "skip filename expansion")
	parseCmd.Flags().IntVar(&parseLimit, "limit", 128, "maximum rendered pipeline length")
}

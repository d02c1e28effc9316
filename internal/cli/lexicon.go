package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/lexicon"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Print the effective pattern lexicon as YAML",
		Long: "Print the pattern tables in effect (built-in, overlaid with --patterns). " +
			"The output is a valid --patterns file and a starting point for custom lexicons.",
		Run: runLexicon,
	}

	RootCmd.AddCommand(cmd)
}

func runLexicon(cmd *cobra.Command, args []string) {
	l, err := lexicon.Load(cfg.PatternsFile)
	if err != nil {
		exitErr("load patterns", err)
	}
	if _, err := l.Compile(); err != nil {
		exitErr("compile patterns", err)
	}
	b, err := l.Encode()
	if err != nil {
		exitErr("encode patterns", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
}

package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score cross-context consistency and store the report",
		Run:   runAnalyze,
	}

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	m, s, err := openMonitor()
	if err != nil {
		exitErr("open monitor", err)
	}
	defer s.Close()

	r, err := m.AnalyzeConsistency(cmd.Context())
	if err != nil {
		exitErr("analyze", err)
	}
	flushMetrics(cmd.Context(), s)

	emit(cmd, r, func() string { return renderReport(r) })
}

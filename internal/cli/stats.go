package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.DBPath)
	if err != nil {
		exitErr("stats", err)
	}

	emit(cmd, stats, func() string {
		var b strings.Builder
		b.WriteString(titleStyle.Render("driftwatch") + "\n")
		fmt.Fprintf(&b, "%s %s (%d bytes)\n", labelStyle.Render("database"), stats.DBPath, stats.DBSizeBytes)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("samples"), stats.TotalSamples)
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("profiles"), stats.Profiles)
		fmt.Fprintf(&b, "%s %d", labelStyle.Render("reports"), stats.Reports)
		for _, c := range stats.Contexts {
			fmt.Fprintf(&b, "\n  %-14s %d", c.Context, c.Samples)
		}
		return b.String()
	})
}

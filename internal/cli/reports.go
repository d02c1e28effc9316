package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List stored consistency reports, newest first",
		Run:   runReports,
	}

	cmd.Flags().IntP("limit", "l", 10, "Max reports (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runReports(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rs, err := s.Reports(cmd.Context(), limit)
	if err != nil {
		exitErr("reports", err)
	}

	emit(cmd, rs, func() string {
		if len(rs) == 0 {
			return "no reports yet"
		}
		blocks := make([]string, 0, len(rs))
		for _, r := range rs {
			blocks = append(blocks, renderReport(r))
		}
		return strings.Join(blocks, "\n\n")
	})
}

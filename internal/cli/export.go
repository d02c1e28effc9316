package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export samples, profiles and reports as JSON",
		Long:  "Export the whole database as one JSON snapshot, to stdout or a file with -o.",
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snap, err := store.Export(cmd.Context(), s)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(snap, "", "  ")
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}
	if err := os.WriteFile(output, append(b, '\n'), 0o644); err != nil {
		exitErr("write export", err)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a JSON snapshot",
		Long:  "Import a snapshot (stdin or file) in the format produced by export. Samples and reports already present are skipped.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read snapshot", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := store.Import(cmd.Context(), s, &snap)
	if err != nil {
		exitErr("import", err)
	}
	flushMetrics(cmd.Context(), s)

	emit(cmd, res, func() string {
		return fmt.Sprintf("imported %d profiles, %d samples, %d reports (%d skipped)",
			res.Profiles, res.Samples, res.Reports, res.Skipped)
	})
}

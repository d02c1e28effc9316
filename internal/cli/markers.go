package cli

import (
	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/markers"
)

func init() {
	cmd := &cobra.Command{
		Use:   "markers [response]",
		Short: "Extract behavioral markers from a response",
		Long:  "Extract behavioral markers without recording anything. The response can be a positional arg or piped via stdin.",
		Run:   runMarkers,
	}

	cmd.Flags().StringP("tools", "t", "", "Comma-separated tools invoked while producing the response")

	RootCmd.AddCommand(cmd)
}

func runMarkers(cmd *cobra.Command, args []string) {
	tools, _ := cmd.Flags().GetString("tools")

	response, err := readText(cmd, args)
	if err != nil {
		exitErr("read stdin", err)
	}

	lex, err := lexicon.LoadFile(cfg.PatternsFile)
	if err != nil {
		exitErr("load patterns", err)
	}

	mk := markers.New(lex).Extract(response, splitList(tools))
	emit(cmd, mk, func() string { return renderMarkers(mk) })
}

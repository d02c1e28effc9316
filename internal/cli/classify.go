package cli

import (
	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/classifier"
	"github.com/kohljary/driftwatch/internal/lexicon"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [response]",
		Short: "Classify the conversational context of a response",
		Long:  "Classify a response without recording anything. The response can be a positional arg or piped via stdin.",
		Run:   runClassify,
	}

	cmd.Flags().StringP("user", "u", "", "The user message that prompted the response")

	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	response, err := readText(cmd, args)
	if err != nil {
		exitErr("read stdin", err)
	}

	lex, err := lexicon.LoadFile(cfg.PatternsFile)
	if err != nil {
		exitErr("load patterns", err)
	}

	c := classifier.New(lex, classifier.WithSecondaryThreshold(cfg.SecondaryThreshold)).Classify(response, user)
	emit(cmd, c, func() string { return renderClassification(c) })
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/monitor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "observe [response]",
		Short: "Classify, extract and record one agent response",
		Long: "Classify an agent response, extract its behavioral markers and record them as a sample " +
			"of the detected context. The response can be a positional arg or piped via stdin.",
		Run: runObserve,
	}

	cmd.Flags().StringP("user", "u", "", "The user message that prompted the response")
	cmd.Flags().StringP("tools", "t", "", "Comma-separated tools invoked while producing the response")
	cmd.Flags().String("conversation", "", "Conversation ID")
	cmd.Flags().String("message", "", "Message ID")

	RootCmd.AddCommand(cmd)
}

func runObserve(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	tools, _ := cmd.Flags().GetString("tools")
	conversation, _ := cmd.Flags().GetString("conversation")
	message, _ := cmd.Flags().GetString("message")

	response, err := readText(cmd, args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if strings.TrimSpace(response) == "" {
		exitErr("observe", fmt.Errorf("response is required (positional arg or stdin)"))
	}

	m, s, err := openMonitor()
	if err != nil {
		exitErr("open monitor", err)
	}
	defer s.Close()

	res, err := m.Observe(cmd.Context(), monitor.Observation{
		Response:       response,
		User:           user,
		Tools:          splitList(tools),
		ConversationID: conversation,
		MessageID:      message,
	})
	if err != nil {
		exitErr("observe", err)
	}
	flushMetrics(cmd.Context(), s)

	emit(cmd, res, func() string {
		return renderClassification(res.Classification) + "\n\n" + renderMarkers(res.Markers)
	})
}

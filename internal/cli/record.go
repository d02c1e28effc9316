package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/model"
	"github.com/kohljary/driftwatch/internal/profile"
)

func init() {
	cmd := &cobra.Command{
		Use:   "record [markers-json]",
		Short: "Record precomputed markers as a sample",
		Long: "Record a behavioral markers object (as printed by `markers`) under an explicit context. " +
			"The JSON can be a positional arg or piped via stdin.",
		Run: runRecord,
	}

	cmd.Flags().StringP("context", "c", "", "Context category (required)")
	cmd.Flags().String("conversation", "", "Conversation ID")
	cmd.Flags().String("message", "", "Message ID")

	cmd.MarkFlagRequired("context")

	RootCmd.AddCommand(cmd)
}

type recordResult struct {
	OK      bool                  `json:"ok"`
	Context model.ContextCategory `json:"context"`
	Profile *model.ContextProfile `json:"profile"`
}

func runRecord(cmd *cobra.Command, args []string) {
	ctxName, _ := cmd.Flags().GetString("context")
	conversation, _ := cmd.Flags().GetString("conversation")
	message, _ := cmd.Flags().GetString("message")

	c, err := model.ParseContext(ctxName)
	if err != nil {
		exitErr("record", err)
	}

	data, err := readText(cmd, args)
	if err != nil {
		exitErr("read stdin", err)
	}
	if strings.TrimSpace(data) == "" {
		exitErr("record", fmt.Errorf("markers JSON is required (positional arg or stdin)"))
	}
	var mk model.BehavioralMarkers
	if err := json.Unmarshal([]byte(data), &mk); err != nil {
		exitErr("parse json", err)
	}

	m, s, err := openMonitor()
	if err != nil {
		exitErr("open monitor", err)
	}
	defer s.Close()

	if err := m.RecordSample(cmd.Context(), c, mk, profile.IDs{ConversationID: conversation, MessageID: message}); err != nil {
		exitErr("record", err)
	}
	flushMetrics(cmd.Context(), s)

	res := recordResult{OK: true, Context: c, Profile: m.ContextProfile(cmd.Context(), c)}
	emit(cmd, res, func() string {
		if res.Profile == nil {
			return fmt.Sprintf("recorded %s sample (no profile yet)", c)
		}
		return renderProfile(*res.Profile)
	})
}

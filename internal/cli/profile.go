package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile <context>",
		Short: "Show the behavioral profile of one context",
		Args:  cobra.ExactArgs(1),
		Run:   runProfile,
	}

	RootCmd.AddCommand(cmd)

	list := &cobra.Command{
		Use:   "profiles",
		Short: "Show every context profile",
		Run:   runProfiles,
	}

	RootCmd.AddCommand(list)
}

func runProfile(cmd *cobra.Command, args []string) {
	c, err := model.ParseContext(args[0])
	if err != nil {
		exitErr("profile", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := s.Profile(cmd.Context(), c)
	if err != nil {
		exitErr("profile", err)
	}
	if p == nil {
		exitErr("profile", fmt.Errorf("no profile for %s yet", c))
	}

	emit(cmd, p, func() string { return renderProfile(*p) })
}

func runProfiles(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ps, err := s.Profiles(cmd.Context())
	if err != nil {
		exitErr("profiles", err)
	}

	emit(cmd, ps, func() string {
		if len(ps) == 0 {
			return "no profiles yet"
		}
		var blocks []string
		for _, c := range model.AllContexts {
			if p, ok := ps[c]; ok {
				blocks = append(blocks, renderProfile(p))
			}
		}
		return strings.Join(blocks, "\n\n")
	})
}

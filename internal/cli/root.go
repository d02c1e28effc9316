// Package cli implements the driftwatch CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kohljary/driftwatch/internal/config"
	"github.com/kohljary/driftwatch/internal/lexicon"
	"github.com/kohljary/driftwatch/internal/metrics"
	"github.com/kohljary/driftwatch/internal/monitor"
	"github.com/kohljary/driftwatch/internal/store"
)

var (
	dbPath       string
	formatFlag   string
	patternsFlag string
	metricsFlag  string

	cfg config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "driftwatch",
	Short: "Behavioral consistency monitor for AI agents",
	Long: "Classify agent responses by conversational context, profile behavioral markers per context, " +
		"and report where the agent behaves inconsistently across contexts. SQLite-backed, single binary.",
	PersistentPreRun: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $DRIFTWATCH_DB or ~/.driftwatch/driftwatch.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&patternsFlag, "patterns", "", "YAML lexicon overriding the built-in patterns (default: $DRIFTWATCH_PATTERNS_FILE)")
	RootCmd.PersistentFlags().StringVar(&metricsFlag, "metrics-file", "", "Write Prometheus metrics to this textfile after each run (default: $DRIFTWATCH_METRICS_FILE)")
}

func setup(cmd *cobra.Command, args []string) {
	c, err := config.Load()
	if err != nil {
		exitErr("config", err)
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if patternsFlag != "" {
		c.PatternsFile = patternsFlag
	}
	if metricsFlag != "" {
		c.MetricsFile = metricsFlag
	}
	if formatFlag != "json" && formatFlag != "text" {
		exitErr("format", fmt.Errorf("unknown format %q (want json or text)", formatFlag))
	}
	cfg = c

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath, cfg.Limits())
}

// openMonitor opens the store and builds a Monitor from the loaded config.
// The caller closes the returned store.
func openMonitor() (*monitor.Monitor, *store.SQLiteStore, error) {
	lex, err := lexicon.LoadFile(cfg.PatternsFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	opts := monitor.DefaultOptions()
	opts.Lexicon = lex
	opts.Thresholds = cfg.Thresholds()
	opts.SecondaryThreshold = cfg.SecondaryThreshold
	opts.MinProfileSamples = cfg.MinProfileSamples
	return monitor.New(s, opts), s, nil
}

// flushMetrics rewrites the textfile from the stored state when one is
// configured. Failures are logged, never fatal.
func flushMetrics(ctx context.Context, s store.Store) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(ctx, cfg.MetricsFile, s); err != nil {
		log.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("write metrics textfile")
	}
}

// readText returns the positional args joined, or piped stdin.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// emit prints v as indented JSON, or through text when --format=text.
func emit(cmd *cobra.Command, v any, text func() string) {
	if formatFlag == "text" && text != nil {
		fmt.Fprintln(cmd.OutOrStdout(), text())
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

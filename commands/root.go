package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/vapi-transcripts/internal/config"
	"github.com/penwyp/vapi-transcripts/internal/core/identifier"
	"github.com/penwyp/vapi-transcripts/internal/data/browser"
	"github.com/penwyp/vapi-transcripts/internal/data/vapi"
	"github.com/penwyp/vapi-transcripts/internal/delivery"
	"github.com/penwyp/vapi-transcripts/internal/pipeline"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

var (
	// Logging related
	debug bool

	// Assistant selection
	assistantID string

	// Call filtering
	minDuration int
	days        int
	today       bool
	limit       int

	// Output related
	outputFile string
	noPaste    bool
	timezone   string

	rootCmd = &cobra.Command{
		Use:   "vapi-transcripts [flags]",
		Short: "VAPI call transcript extraction tool",
		Long: `vapi-transcripts fetches the call history of a VAPI assistant and merges the
transcripts into a single document delivered to the clipboard or a file.

The assistant is discovered from open VAPI dashboard tabs in Chrome, or given
explicitly with --assistant-id.

Examples:
  vapi-transcripts                                          # Discover the assistant from Chrome
  vapi-transcripts -a 9aa2c370-f8f8-4002-9ae5-93429a7b2bd6  # Fetch for an explicit assistant
  vapi-transcripts --min-duration 30 --today                # Today's calls of at least 30 seconds
  vapi-transcripts --days 7 -l 10                           # Ten most recent calls of the last week
  vapi-transcripts -o transcripts.md --no-paste             # Write to a file instead of pasting`,
		RunE: runTranscripts,
	}
)

const (
	defaultLogFile    = "~/.vapi-transcripts/logs/app.log"
	defaultConfigFile = "~/.vapi-transcripts/config.yaml"
)

func init() {
	// Assistant selection
	rootCmd.Flags().StringVarP(&assistantID, "assistant-id", "a", "",
		"Assistant ID to fetch transcripts for (skips Chrome discovery)")

	// Call filtering
	rootCmd.Flags().IntVarP(&minDuration, "min-duration", "d", 0,
		"Minimum call duration in seconds (0 = no minimum)")
	rootCmd.Flags().IntVar(&days, "days", 0,
		"Only include calls from the last N days")
	rootCmd.Flags().BoolVar(&today, "today", false,
		"Only include calls from today")
	rootCmd.Flags().IntVarP(&limit, "limit", "l", 0,
		"Limit to the N most recent calls (0 = unlimited)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Write transcripts to a file instead of the clipboard")
	rootCmd.Flags().BoolVar(&noPaste, "no-paste", false,
		"Copy to clipboard without pasting at the cursor")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
}

func runTranscripts(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, cfg)

	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	outputPath := outputFile
	if outputPath != "" {
		outputPath = expandPath(outputPath)
	}

	p := pipeline.New(&pipeline.Config{
		AssistantID:        assistantID,
		MinDurationSeconds: minDuration,
		DaysAgo:            days,
		TodayOnly:          today,
		Limit:              limit,
		OutputPath:         outputPath,
		SuppressPaste:      noPaste,
	},
		identifier.NewResolver(browser.NewChromeTabs()),
		vapi.NewClientWithBaseURL(cfg.APIKey, cfg.BaseURL),
		delivery.NewDispatcher())
	return p.Run()
}

// initRuntime wires logging, the layered config, and the time provider. It
// is shared by every subcommand.
func initRuntime() (*config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Initialize logging
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := config.Load(expandPath(defaultConfigFile))
	if err != nil {
		return nil, err
	}
	// The debug flag outranks the configured log level
	if cfg.LogLevel != "" && !debug {
		util.ActiveLogger().SetLevel(util.ParseLogLevel(cfg.LogLevel))
	}

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigDefaults fills filter flags the user did not set on the command
// line from the config file defaults.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("min-duration") && cfg.Defaults.MinDurationSeconds > 0 {
		minDuration = cfg.Defaults.MinDurationSeconds
	}
	if !flags.Changed("days") && cfg.Defaults.DaysAgo > 0 {
		days = cfg.Defaults.DaysAgo
	}
	if !flags.Changed("today") && cfg.Defaults.TodayOnly {
		today = cfg.Defaults.TodayOnly
	}
	if !flags.Changed("limit") && cfg.Defaults.Limit > 0 {
		limit = cfg.Defaults.Limit
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

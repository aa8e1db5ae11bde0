// Package cli wires the command-line surface: the root countdown/CSV
// command and the transform subcommand.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"icsreport/internal/config"
	"icsreport/internal/ics"
	applog "icsreport/internal/log"
	"icsreport/internal/report"
)

var (
	cfgPath string
	verbose bool

	flagPlain     bool
	flagDates     bool
	flagReportDue string
	flagCSV       bool
	flagAsanaCSV  bool
)

var rootCmd = &cobra.Command{
	Use:   "icsreport <feed-url>",
	Short: "Countdown summaries and CSV exports from an iCalendar feed",
	Long: `icsreport fetches an iCalendar (.ics) feed and prints a countdown
summary of upcoming events, a generic task CSV, or an Asana-import CSV.
The "transform" subcommand instead writes a normalized UTC calendar file.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applog.Setup(verbose)
	},
	RunE: runReport,
}

// Execute runs the CLI and exits nonzero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (created with defaults if missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "plain-text output instead of Markdown")
	rootCmd.Flags().BoolVar(&flagDates, "dates", false, "include start/end date ranges in countdown lines")
	rootCmd.Flags().StringVar(&flagReportDue, "report_due", "", "shift the countdown cutoff by this many days")
	rootCmd.Flags().BoolVar(&flagCSV, "csv", false, "generic CSV output (Task, Due Date, Notes)")
	rootCmd.Flags().BoolVar(&flagAsanaCSV, "asana_csv", false, "Asana-import CSV output")
	rootCmd.MarkFlagsMutuallyExclusive("csv", "asana_csv")

	rootCmd.AddCommand(transformCmd)
}

// loadConfig loads the config file when one was requested, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(cfgPath)
}

// resolveOffset applies a raw --report_due value over the configured
// default. A malformed value is reported and ignored; it must not abort
// the run.
func resolveOffset(raw string, cfg *config.Config) int {
	if raw == "" {
		return cfg.ReportDue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Error().Str("value", raw).Msg("--report_due must be an integer; using default offset")
		return cfg.ReportDue
	}
	return n
}

func runReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	offset := resolveOffset(flagReportDue, cfg)
	feedURL := args[0]

	fetcher := ics.NewFetcher(time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.UserAgent)

	var body []byte
	err = withSpinner("Fetching calendar feed...", func() error {
		var ferr error
		body, ferr = fetcher.Fetch(cmd.Context(), feedURL)
		return ferr
	})
	if err != nil {
		return err
	}

	events, err := ics.Parse(body)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	opts := report.Options{
		Plain:      flagPlain,
		ShowDates:  flagDates,
		OffsetDays: offset,
	}

	out := cmd.OutOrStdout()
	switch {
	case flagAsanaCSV:
		return report.WriteAsanaCSV(out, events, opts)
	case flagCSV:
		return report.WriteCSV(out, events, opts)
	default:
		_, err := fmt.Fprint(out, report.Countdown(events, opts))
		return err
	}
}

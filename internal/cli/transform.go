package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"icsreport/internal/config"
	"icsreport/internal/ics"
)

var (
	flagOutput string
	flagWatch  string
)

var transformCmd = &cobra.Command{
	Use:   "transform <feed-url>",
	Short: "Normalize a feed to UTC and write it as an .ics file",
	Long: `transform fetches the feed, rebuilds every event with UTC datetimes
(defaulting a missing end to start+1h), and writes the result to a file.
With --watch the transform re-runs on a cron schedule until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "path for the normalized .ics file (default \"correct.ics\")")
	transformCmd.Flags().StringVar(&flagWatch, "watch", "", "cron schedule for repeated transforms (e.g. \"*/15 * * * *\")")
}

func runTransform(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	feedURL := args[0]
	output := flagOutput
	if output == "" {
		output = cfg.Output
	}

	run := func(ctx context.Context) error {
		return transformOnce(ctx, cfg, feedURL, output)
	}

	if flagWatch == "" {
		return run(cmd.Context())
	}

	// Watch mode: run immediately, then on schedule until SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("transform failed")
	}

	c, err := newWatchCron(flagWatch, func() {
		if err := run(ctx); err != nil {
			log.Error().Err(err).Msg("transform failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid --watch schedule %q: %w", flagWatch, err)
	}
	c.Start()
	defer c.Stop()

	log.Info().Str("schedule", flagWatch).Msg("watching feed")
	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}

// newWatchCron builds the watch-mode scheduler. A transform that outruns
// the schedule interval must not pile up concurrent runs, so overlapping
// ticks are skipped.
func newWatchCron(schedule string, run func()) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, run); err != nil {
		return nil, err
	}
	return c, nil
}

// transformOnce performs one fetch-normalize-write cycle. Nothing is
// written unless the whole pipeline succeeded.
func transformOnce(ctx context.Context, cfg *config.Config, feedURL, output string) error {
	fetcher := ics.NewFetcher(time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.UserAgent)

	var body []byte
	err := withSpinner("Fetching calendar feed...", func() error {
		var ferr error
		body, ferr = fetcher.Fetch(ctx, feedURL)
		return ferr
	})
	if err != nil {
		return err
	}
	log.Info().Msg("feed fetched")

	var serialized string
	err = withSpinner("Normalizing calendar...", func() error {
		events, perr := ics.Parse(body)
		if perr != nil {
			return fmt.Errorf("parse feed: %w", perr)
		}
		serialized = ics.Normalize(events).Serialize()
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Msg("normalization complete")

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, []byte(serialized), 0o644); err != nil {
		return err
	}

	log.Info().Str("path", output).Msg("normalized calendar written")
	return nil
}

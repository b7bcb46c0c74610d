// Package main provides the CLI entrypoint for calaudit.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"calaudit/internal/audit"
	"calaudit/internal/config"
	"calaudit/internal/ics"
	appLog "calaudit/internal/log"
	"calaudit/internal/model"
	"calaudit/internal/prompt"
	"calaudit/internal/report"
	"calaudit/internal/window"
)

var (
	configPath   string
	firstTagOnly bool

	dayDate   string
	weekStart string

	rangeStartDate string
	rangeStartTime string
	rangeEndDate   string
	rangeEndTime   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "calaudit",
		Short:         "Audit calendar time by category",
		Long:          "calaudit queries subscribed ICS calendars, classifies events by their [Tags: ...] annotations, and reports accumulated time per category.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runInteractiveCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().BoolVar(&firstTagOnly, "first-tag-only", false, "audit only the first tag of each event")

	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newRangeCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Audit a single day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loc, err := loadConfig()
			if err != nil {
				return err
			}
			win, err := window.ResolveDay(dayDate, loc)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), cfg, win, resolveOptions(cmd, cfg))
		},
	}
	cmd.Flags().StringVar(&dayDate, "date", "", "day to audit (YYYY-MM-DD, default today)")
	return cmd
}

func newWeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Audit a seven-day window with per-day breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loc, err := loadConfig()
			if err != nil {
				return err
			}
			win, err := window.ResolveWeek(weekStart, loc)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), cfg, win, resolveOptions(cmd, cfg))
		},
	}
	cmd.Flags().StringVar(&weekStart, "start", "", "first day of the week (YYYY-MM-DD, default today)")
	return cmd
}

func newRangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Audit an arbitrary datetime range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, loc, err := loadConfig()
			if err != nil {
				return err
			}
			win, err := window.ResolveRange(rangeStartDate, rangeStartTime, rangeEndDate, rangeEndTime, loc)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), cfg, win, resolveOptions(cmd, cfg))
		},
	}
	cmd.Flags().StringVar(&rangeStartDate, "start-date", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&rangeStartTime, "start-time", "", "start time (HH:MM, default 00:00)")
	cmd.Flags().StringVar(&rangeEndDate, "end-date", "", "end date (YYYY-MM-DD, default start date)")
	cmd.Flags().StringVar(&rangeEndTime, "end-time", "", "end time (HH:MM, default 23:59)")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the daily audit on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE:  runWatchCmd,
	}
}

func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	win, opts, err := p.Run(loc, cfg.FirstTagOnly)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("first-tag-only") {
		opts.FirstTagOnly = firstTagOnly
	}
	return runAudit(cmd.Context(), cfg, win, opts)
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, loc, err := loadConfig()
	if err != nil {
		return err
	}
	opts := resolveOptions(cmd, cfg)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	runOnce := func() {
		win, err := window.ResolveDay("", loc)
		if err != nil {
			appLog.Error("failed to resolve today's window", err)
			return
		}
		if err := runAudit(ctx, cfg, win, opts); err != nil {
			appLog.Error("audit run failed", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Refresh, runOnce); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", cfg.Refresh, err)
	}

	appLog.Info("watch started", "refresh", cfg.Refresh)
	runOnce()
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	appLog.Info("watch stopped")
	return nil
}

// runAudit executes one full pipeline: fetch, normalize, aggregate,
// format. Fetch failures surface as "no events found"; the run still
// exits cleanly.
func runAudit(ctx context.Context, cfg *config.Config, win window.Window, opts model.Options) error {
	client := ics.NewClient(cfg)

	events, err := client.Events(ctx, win)
	if err != nil {
		appLog.Error("event fetch failed", err)
		events = nil
	}
	if len(events) == 0 {
		fmt.Printf("No events found for %s\n", win)
		return nil
	}

	norms := make([]model.NormalizedEvent, 0, len(events))
	for _, ev := range events {
		norm, nerr := audit.Normalize(ev, opts)
		if nerr != nil {
			appLog.Error("skipping malformed event", nerr, "summary", ev.Summary, "start", ev.Start)
			continue
		}
		norms = append(norms, norm)
	}

	out, err := report.Format(audit.Aggregate(norms), win.Seconds(), opts)
	if errors.Is(err, report.ErrEmptyReport) {
		fmt.Printf("No events found for %s\n", win)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Print(out)

	if !win.MultiDay() {
		return nil
	}

	for _, day := range audit.Decompose(win, events, opts) {
		fmt.Printf("\n%s %s\n", day.Date.Weekday(), day.Date.Format("2006-01-02"))
		if day.Empty {
			fmt.Println("No events found.")
			continue
		}
		out, err := report.Format(day.Report, audit.SecondsPerDay, opts)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}
	return nil
}

func loadConfig() (*config.Config, *time.Location, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	loc, err := window.ParseOffset(cfg.UTCOffset)
	if err != nil {
		return nil, nil, err
	}
	return cfg, loc, nil
}

func resolveOptions(cmd *cobra.Command, cfg *config.Config) model.Options {
	opts := model.Options{FirstTagOnly: cfg.FirstTagOnly}
	if cmd.Flags().Changed("first-tag-only") {
		opts.FirstTagOnly = firstTagOnly
	}
	return opts
}

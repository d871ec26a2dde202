// Package commands implements CLI command handlers for downstats.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/downstats/internal/feed"
	"github.com/Sumatoshi-tech/downstats/internal/report"
	"github.com/Sumatoshi-tech/downstats/internal/stats"
	"github.com/Sumatoshi-tech/downstats/pkg/config"
	"github.com/Sumatoshi-tech/downstats/pkg/logging"
)

// Flag names and usage strings for the run command.
const (
	runCmdUse         = "run"
	runCmdShort       = "Fetch the feeds, reconcile, validate and render the report"
	configFlag        = "config"
	configFlagUsage   = "path to config file"
	outputFlag        = "output"
	outputFlagShort   = "o"
	outputFlagUsage   = "output path for the HTML report"
	overrideFlag      = "override"
	overrideFlagUsage = "path to the local override CSV"
	noColorFlag       = "no-color"
	noColorFlagUsage  = "disable colored output"
)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	configPath   string
	output       string
	overridePath string
	noColor      bool
}

// NewRunCommand creates the run subcommand.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   runCmdUse,
		Short: runCmdShort,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&rc.configPath, configFlag, "", configFlagUsage)
	cmd.Flags().StringVarP(&rc.output, outputFlag, outputFlagShort, "", outputFlagUsage)
	cmd.Flags().StringVar(&rc.overridePath, overrideFlag, "", overrideFlagUsage)
	cmd.Flags().BoolVar(&rc.noColor, noColorFlag, false, noColorFlagUsage)

	return cmd
}

func (rc *RunCommand) execute(ctx context.Context) error {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	if rc.output != "" {
		cfg.Report.Output = rc.output
	}

	if rc.overridePath != "" {
		cfg.Override.Path = rc.overridePath
	}

	log := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	client := feed.NewClient(nil, log)

	return runPipeline(ctx, cfg, log, client, os.Stdout, rc.noColor)
}

// runPipeline is the whole batch run: fetch, normalize, reconcile, validate,
// render. A failed remote fetch aborts before any output is written; a
// missing override file and a failed report write only degrade the run.
func runPipeline(ctx context.Context, cfg *config.Config, log *slog.Logger, client *feed.Client, out io.Writer, noColor bool) error {
	layouts, err := feed.DefaultLayouts()
	if err != nil {
		return err
	}

	raw, err := client.FetchAll(ctx, feed.Endpoints{
		Totals:    cfg.Feeds.TotalsURL,
		Versions:  cfg.Feeds.VersionsURL,
		OS:        cfg.Feeds.OSURL,
		Countries: cfg.Feeds.CountriesURL,
	})
	if err != nil {
		return err
	}

	builder, audits, err := feed.BuildTable(raw, layouts)
	if err != nil {
		return err
	}

	var entries []stats.OverrideEntry

	override, err := feed.LoadOverride(cfg.Override.Path)

	switch {
	case err == nil:
		stats.Reconcile(builder, override.Months)

		entries = override.Entries
		audits["override"] = override.Audit
	case errors.Is(err, feed.ErrOverrideMissing):
		log.Warn("override feed unavailable, continuing with API data only", "path", cfg.Override.Path, "err", err)
	default:
		return err
	}

	master := builder.Build()
	checks := stats.ValidateYears(master, entries)

	for _, check := range checks {
		if !check.Consistent() {
			log.Error("aggregate total below the override monthly floor",
				"year", check.Year, "aggregate", check.AggregateTotal, "floor", check.MasterTotal)
		}
	}

	page := report.BuildPage(master, report.Options{
		Title:        cfg.Report.Title,
		TopCountries: cfg.Report.TopCountries,
		TrendKeys:    cfg.Report.TrendKeys,
	})

	writeErr := report.WritePage(page, cfg.Report.Output)
	if writeErr != nil {
		// The data work succeeded; a failed artifact write is reported but
		// does not fail the run.
		log.Error("report write failed", "path", cfg.Report.Output, "err", writeErr)
	} else {
		log.Info("report written", "path", cfg.Report.Output)
	}

	report.WriteSummary(out, checks, audits.Total(), report.SummaryOptions{NoColor: noColor})

	return nil
}

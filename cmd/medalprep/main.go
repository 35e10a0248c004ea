package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/paveg/medalprep/internal/config"
	"github.com/paveg/medalprep/internal/logger"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/monitoring"
	"github.com/paveg/medalprep/internal/pipeline"
	"github.com/paveg/medalprep/internal/report"
	"github.com/paveg/medalprep/internal/version"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "medalprep: Olympic medal and country indicator dataset builder (version %s)\n\n", version.Version)
	fmt.Fprintf(os.Stderr, "Usage: medalprep [options]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  -config FILE\n\t\tYAML configuration file (default: $%s)\n", config.EnvConfigFile)
	fmt.Fprintf(os.Stderr, "  -tally-only\n\t\tWrite the medal tally and stop\n")
	fmt.Fprintf(os.Stderr, "  -charts DIR\n\t\tRender PNG charts into DIR\n")
	fmt.Fprintf(os.Stderr, "  -summary\n\t\tPrint summary statistics of the analysis table\n")
	fmt.Fprintf(os.Stderr, "  -trace\n\t\tPrint stage spans to stderr\n")
	fmt.Fprintf(os.Stderr, "  -v, -version\n\t\tPrint version information and exit\n")
	fmt.Fprintf(os.Stderr, "  -h, -help\n\t\tShow this help message and exit\n")
}

type flags struct {
	config    string
	tallyOnly bool
	charts    string
	summary   bool
	trace     bool
}

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias

	var f flags
	flag.StringVar(&f.config, "config", "", "YAML configuration file")
	flag.BoolVar(&f.tallyOnly, "tally-only", false, "Write the medal tally and stop")
	flag.StringVar(&f.charts, "charts", "", "Render PNG charts into this directory")
	flag.BoolVar(&f.summary, "summary", false, "Print summary statistics of the analysis table")
	flag.BoolVar(&f.trace, "trace", false, "Print stage spans to stderr")

	//nolint:reassign // Standard Go pattern for customizing flag usage message
	flag.Usage = customUsage

	flag.Parse()

	if *versionFlag {
		fmt.Print(version.Info().String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags, stdout io.Writer) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "medalprep: %v\n", err)
		return err
	}
	if f.charts != "" {
		cfg.ChartsDir = f.charts
	}
	if f.trace {
		cfg.Trace = true
	}

	log, err := logger.Stderr(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "medalprep: %v\n", err)
		return err
	}
	log.Debug(ctx, "starting", logger.String("version", version.Info().Version))

	if cfg.Trace {
		shutdown, err := monitoring.SetupTracing(os.Stderr)
		if err != nil {
			log.Error(ctx, "tracing setup failed", logger.Error(err))
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn(ctx, "tracing shutdown failed", logger.Error(err))
			}
		}()
	}

	res, err := pipeline.Run(ctx, cfg, pipeline.Options{
		Logger:    log,
		Metrics:   monitoring.NewMetricsCollector(true),
		TallyOnly: f.tallyOnly,
	})
	if err != nil {
		// Run has already logged the failure with its run id.
		return err
	}

	if f.summary && !f.tallyOnly {
		printSummary(stdout, res.Analysis)
	}
	return nil
}

func printSummary(w io.Writer, rows model.AnalysisTable) {
	fmt.Fprintf(w, "Analysis rows: %d\n\n", len(rows))

	fmt.Fprintf(w, "Top countries by medals:\n")
	for i, c := range report.TopCountries(rows, report.DefaultTop) {
		fmt.Fprintf(w, "  %2d. %-32s %6d\n", i+1, c.Country, c.Total)
	}

	split := report.HostSplit(rows)
	fmt.Fprintf(w, "\nMedals per Games (n, min, q1, median, q3, max):\n")
	for _, s := range []struct {
		name string
		sum  report.Summary
	}{{"host", split.Host}, {"non-host", split.NonHost}} {
		fmt.Fprintf(w, "  %-9s %5d %8.1f %8.1f %8.1f %8.1f %8.1f\n",
			s.name, s.sum.N, s.sum.Min, s.sum.Q1, s.sum.Median, s.sum.Q3, s.sum.Max)
	}

	m, err := report.Correlation(rows, report.CorrelationColumns)
	if err != nil {
		fmt.Fprintf(w, "\nCorrelation: %v\n", err)
		return
	}
	fmt.Fprintf(w, "\nCorrelation:\n%24s", "")
	for _, c := range m.Columns {
		fmt.Fprintf(w, " %8.8s", c)
	}
	fmt.Fprintln(w)
	for i, r := range m.Columns {
		fmt.Fprintf(w, "%24s", r)
		for j := range m.Columns {
			fmt.Fprintf(w, " %8.3f", m.At(i, j))
		}
		fmt.Fprintln(w)
	}
}

// Package pipeline assembles the medal tally and the country-year analysis
// table from the configured sources.
//
// A run reads the medal and host sources, tallies medals per country and
// Games, builds one record per country and Olympic year, prepares every
// indicator table on a bounded worker pool, left-joins the indicators in a
// fixed order, drops records with any missing indicator and writes the
// finalized table. Every stage is timed and traced through
// monitoring.MetricsCollector.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/paveg/medalprep/internal/charts"
	"github.com/paveg/medalprep/internal/config"
	"github.com/paveg/medalprep/internal/errors"
	medalio "github.com/paveg/medalprep/internal/io"
	"github.com/paveg/medalprep/internal/join"
	"github.com/paveg/medalprep/internal/logger"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/monitoring"
	"github.com/paveg/medalprep/internal/normalize"
	"github.com/paveg/medalprep/internal/parallel"
	"github.com/paveg/medalprep/internal/report"
	"github.com/paveg/medalprep/internal/tally"
	"github.com/paveg/medalprep/internal/table"
)

// Stage names used for logs, metrics and spans.
const (
	StageReadSources       = "read_sources"
	StageTally             = "tally"
	StageBuildRecords      = "build_records"
	StagePrepareIndicators = "prepare_indicators"
	StageJoin              = "join"
	StageDropIncomplete    = "drop_incomplete"
	StageFinalize          = "finalize"
	StageWriteOutputs      = "write_outputs"
	StageRenderCharts      = "render_charts"
)

// Options carries the collaborators of a run.
type Options struct {
	Logger    logger.Logger
	Metrics   *monitoring.MetricsCollector
	TallyOnly bool // stop after writing the tally
}

// Result describes a finished run.
type Result struct {
	RunID     string
	Tally     model.TallyTable
	Analysis  model.AnalysisTable
	JoinStats []join.Stats
	Dropped   int
	Outputs   []string
}

type runner struct {
	cfg     config.Config
	log     logger.Logger
	metrics *monitoring.MetricsCollector
	result  *Result
}

// Run executes the pipeline described by cfg. Any error aborts the run; no
// partial analysis output is written.
func Run(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	r := &runner{
		cfg:     cfg,
		log:     opts.Logger,
		metrics: opts.Metrics,
		result:  result,
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	if r.metrics == nil {
		r.metrics = monitoring.NewMetricsCollector(true)
	}
	r.log = r.log.With(logger.String("run_id", result.RunID))

	r.log.Info(ctx, "run started",
		logger.String("season", cfg.Season),
		logger.Int("start_year", cfg.StartYear),
		logger.Int("end_year", cfg.EndYear))

	if err := r.run(ctx, opts.TallyOnly); err != nil {
		r.log.Error(ctx, "run failed", logger.Error(err))
		return nil, err
	}

	if cfg.MetricsFile != "" {
		if err := r.metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, errors.NewIOError("WriteMetrics", cfg.MetricsFile, err)
		}
		result.Outputs = append(result.Outputs, cfg.MetricsFile)
	}

	summary := r.metrics.GetSummary()
	r.log.Info(ctx, "run finished",
		logger.Int("analysis_rows", len(result.Analysis)),
		logger.Int("dropped", result.Dropped),
		logger.Any("duration", summary.TotalDuration))
	return result, nil
}

func (r *runner) run(ctx context.Context, tallyOnly bool) error {
	n, err := r.normalizer()
	if err != nil {
		return err
	}

	var (
		hosts  []model.Host
		medals []model.MedalRecord
	)
	err = r.stage(ctx, StageReadSources, func(context.Context) (int, error) {
		var err error
		if hosts, err = medalio.ReadHosts(r.cfg.InputPath(r.cfg.Hosts)); err != nil {
			return 0, err
		}
		if medals, err = medalio.ReadMedals(r.cfg.InputPath(r.cfg.Medals)); err != nil {
			return 0, err
		}
		return len(hosts) + len(medals), nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, StageTally, func(context.Context) (int, error) {
		r.result.Tally = model.TallyTable(tally.Compute(hosts, medals, r.cfg.Season))
		return len(r.result.Tally), nil
	})
	if err != nil {
		return err
	}

	if path := r.cfg.OutputPath(r.cfg.TallyOutput); path != "" {
		if err := r.write(ctx, path, r.result.Tally); err != nil {
			return err
		}
	}
	if tallyOnly {
		return nil
	}

	var records []model.CountryYear
	err = r.stage(ctx, StageBuildRecords, func(ctx context.Context) (int, error) {
		var merged int
		records, merged = BuildRecords(r.result.Tally, hosts, n)
		if merged > 0 {
			r.log.Warn(ctx, "tally entries merged into existing country-year records",
				logger.Int("merged", merged))
		}
		return len(records), nil
	})
	if err != nil {
		return err
	}

	var tables map[model.Indicator]*table.Long
	err = r.stage(ctx, StagePrepareIndicators, func(ctx context.Context) (int, error) {
		paths, err := r.cfg.IndicatorPaths()
		if err != nil {
			return 0, err
		}
		pool := parallel.NewWorkerPool(ctx, r.cfg.WorkerCount())
		defer pool.Close()

		tables, err = PrepareAll(ctx, pool, paths, PrepareOptions{
			CountryColumn: r.cfg.CountryColumn,
			StartYear:     r.cfg.StartYear,
			EndYear:       r.cfg.EndYear,
			Fill:          r.cfg.Fill,
			Normalizer:    n,
		}, r.log)
		if err != nil {
			return 0, err
		}
		total := 0
		for _, t := range tables {
			total += t.Len()
		}
		return total, nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, StageJoin, func(ctx context.Context) (int, error) {
		records, r.result.JoinStats = join.All(records, tables)
		for _, s := range r.result.JoinStats {
			r.log.Debug(ctx, "indicator joined",
				logger.String("indicator", s.Indicator.String()),
				logger.Int("matched", s.Matched),
				logger.Int("missed", s.Missed))
		}
		return len(records), nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, StageDropIncomplete, func(context.Context) (int, error) {
		before := len(records)
		records = join.DropIncomplete(records)
		r.result.Dropped = before - len(records)
		r.metrics.RecordDropped(StageDropIncomplete, r.result.Dropped)
		return len(records), nil
	})
	if err != nil {
		return err
	}

	err = r.stage(ctx, StageFinalize, func(context.Context) (int, error) {
		r.result.Analysis = Finalize(records)
		return len(r.result.Analysis), nil
	})
	if err != nil {
		return err
	}

	for _, top := range report.TopCountries(r.result.Analysis, 5) {
		r.log.Info(ctx, "top country",
			logger.String("country", top.Country),
			logger.Any("medals", top.Total))
	}

	if err := r.write(ctx, r.cfg.OutputPath(r.cfg.AnalysisOutput), r.result.Analysis); err != nil {
		return err
	}

	if dir := r.cfg.ChartsDir; dir != "" {
		if len(r.result.Analysis) == 0 {
			r.log.Warn(ctx, "analysis table is empty; skipping charts")
			return nil
		}
		return r.stage(ctx, StageRenderCharts, func(context.Context) (int, error) {
			written, err := charts.Render(dir, r.result.Analysis)
			r.result.Outputs = append(r.result.Outputs, written...)
			return len(written), err
		})
	}
	return nil
}

func (r *runner) normalizer() (*normalize.Normalizer, error) {
	if r.cfg.AliasesFile == "" {
		return normalize.NewNormalizer(nil)
	}

	path := r.cfg.InputPath(r.cfg.AliasesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("LoadAliases", path, err)
	}
	defer f.Close()

	extra, err := normalize.LoadAliases(f)
	if err != nil {
		return nil, errors.NewIOError("LoadAliases", path, err)
	}
	return normalize.NewNormalizer(extra)
}

func (r *runner) write(ctx context.Context, path string, f table.Frame) error {
	return r.stage(ctx, StageWriteOutputs, func(context.Context) (int, error) {
		if err := medalio.WriteFile(path, f); err != nil {
			return 0, err
		}
		r.result.Outputs = append(r.result.Outputs, path)
		r.log.Info(ctx, "output written", logger.String("path", path), logger.Int("rows", f.Len()))
		return f.Len(), nil
	})
}

// stage checks for cancellation, then runs fn as a recorded operation.
func (r *runner) stage(ctx context.Context, name string, fn func(context.Context) (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	var rows int
	err := r.metrics.RecordOperation(ctx, name, func(ctx context.Context) (int, error) {
		var err error
		rows, err = fn(ctx)
		return rows, err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	r.log.Debug(ctx, "stage finished", logger.String("stage", name), logger.Int("rows", rows))
	return nil
}

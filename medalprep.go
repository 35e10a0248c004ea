// Package medalprep builds an analysis-ready dataset of Olympic medal counts
// joined with country-level socioeconomic indicators.
// This package is the public API; everything else lives under internal/.
package medalprep

import (
	"context"
	"io"
	"sync"

	"github.com/paveg/medalprep/internal/config"
	"github.com/paveg/medalprep/internal/logger"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/monitoring"
	"github.com/paveg/medalprep/internal/normalize"
	"github.com/paveg/medalprep/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

// Config describes the inputs, window and outputs of a run.
type Config = config.Config

// AnalysisRow is one finalized country-year record.
type AnalysisRow = model.AnalysisRow

// TallyEntry is the medal count of one country at one edition of the Games.
type TallyEntry = model.TallyEntry

// NewConfig returns the default configuration.
func NewConfig() Config {
	return config.NewConfig()
}

// LoadConfig layers the YAML file at path and MEDALPREP_ environment
// variables over the defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	pipeline pipeline.Options
	logOut   io.Writer
}

// WithLogOutput writes structured logs to w at the configured level.
func WithLogOutput(w io.Writer) Option {
	return func(o *runOptions) {
		o.logOut = w
	}
}

// WithTallyOnly stops the run after the medal tally is written.
func WithTallyOnly() Option {
	return func(o *runOptions) {
		o.pipeline.TallyOnly = true
	}
}

// Result is the outcome of a run.
type Result struct {
	res      *pipeline.Result
	registry *prometheus.Registry
}

// RunID returns the identifier tagged on every log line of the run.
func (r *Result) RunID() string {
	return r.res.RunID
}

// Tally returns the medal tally.
func (r *Result) Tally() []TallyEntry {
	return r.res.Tally
}

// Analysis returns the finalized analysis rows.
func (r *Result) Analysis() []AnalysisRow {
	return r.res.Analysis
}

// Dropped returns the number of country-year records removed for missing
// indicator values.
func (r *Result) Dropped() int {
	return r.res.Dropped
}

// Outputs returns the files written by the run.
func (r *Result) Outputs() []string {
	return r.res.Outputs
}

// Metrics returns the Prometheus registry holding the run's stage metrics.
func (r *Result) Metrics() prometheus.Gatherer {
	return r.registry
}

// Run executes the pipeline described by cfg.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	o := &runOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logOut != nil {
		log, err := logger.New(o.logOut, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
		if err != nil {
			return nil, err
		}
		o.pipeline.Logger = log
	}
	metrics := monitoring.NewMetricsCollector(true)
	o.pipeline.Metrics = metrics

	res, err := pipeline.Run(ctx, cfg, o.pipeline)
	if err != nil {
		return nil, err
	}
	return &Result{res: res, registry: metrics.Registry()}, nil
}

// ParseNumber parses a numeric string with an optional K, M or B scale
// suffix, as found in indicator tables.
func ParseNumber(raw string) (float64, error) {
	return normalize.ParseScaledNumber(raw)
}

var defaultNormalizer = sync.OnceValues(func() (*normalize.Normalizer, error) {
	return normalize.NewNormalizer(nil)
})

// CanonicalCountry returns the canonical label of a country name using the
// built-in alias table.
func CanonicalCountry(name string) (string, error) {
	n, err := defaultNormalizer()
	if err != nil {
		return "", err
	}
	return n.Canonical(name), nil
}

package pipeline

import (
	"context"

	medalio "github.com/paveg/medalprep/internal/io"
	"github.com/paveg/medalprep/internal/interpolate"
	"github.com/paveg/medalprep/internal/logger"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/normalize"
	"github.com/paveg/medalprep/internal/parallel"
	"github.com/paveg/medalprep/internal/table"
)

// PrepareOptions controls indicator preparation.
type PrepareOptions struct {
	CountryColumn string
	StartYear     int // first year of the window, inclusive
	EndYear       int // end of the window, exclusive
	Fill          float64
	Normalizer    *normalize.Normalizer
}

// Prepared is one indicator ready to join.
type Prepared struct {
	Indicator  model.Indicator
	Long       *table.Long
	Duplicates []string // canonical countries that appeared more than once
}

// Canonicalize relabels every row with its canonical country. When several
// rows share a canonical label the first is kept; the dropped labels are
// returned.
func Canonicalize(w *table.Wide, n *normalize.Normalizer) (*table.Wide, []string) {
	out := &table.Wide{Name: w.Name, Years: w.Years, Rows: make([]table.WideRow, 0, len(w.Rows))}
	seen := make(map[string]bool, len(w.Rows))
	var duplicates []string

	for _, row := range w.Rows {
		country := n.Canonical(row.Country)
		if seen[country] {
			duplicates = append(duplicates, country)
			continue
		}
		seen[country] = true
		out.Rows = append(out.Rows, table.WideRow{Country: country, Values: row.Values})
	}
	return out, duplicates
}

// PrepareWide canonicalizes, windows, fills and melts one wide table.
func PrepareWide(w *table.Wide, ind model.Indicator, opts PrepareOptions) Prepared {
	canonical, duplicates := Canonicalize(w, opts.Normalizer)
	filled := interpolate.Fill(canonical.Window(opts.StartYear, opts.EndYear), opts.Fill)
	long := filled.Melt()
	long.Name = ind.String()
	return Prepared{Indicator: ind, Long: long, Duplicates: duplicates}
}

// PrepareIndicator reads the wide file at path and prepares it.
func PrepareIndicator(path string, ind model.Indicator, opts PrepareOptions) (Prepared, error) {
	w, err := medalio.ReadWide(path, ind.String(), opts.CountryColumn)
	if err != nil {
		return Prepared{}, err
	}
	return PrepareWide(w, ind, opts), nil
}

// PrepareAll prepares every indicator in paths on the pool. The result is
// keyed by indicator and does not depend on scheduling order.
func PrepareAll(
	ctx context.Context,
	pool *parallel.WorkerPool,
	paths map[model.Indicator]string,
	opts PrepareOptions,
	log logger.Logger,
) (map[model.Indicator]*table.Long, error) {
	indicators := make([]model.Indicator, 0, len(paths))
	for _, ind := range model.Indicators() {
		if _, ok := paths[ind]; ok {
			indicators = append(indicators, ind)
		}
	}

	prepared, err := parallel.ProcessIndexed(pool, indicators,
		func(_ context.Context, _ int, ind model.Indicator) (Prepared, error) {
			return PrepareIndicator(paths[ind], ind, opts)
		})
	if err != nil {
		return nil, err
	}

	tables := make(map[model.Indicator]*table.Long, len(prepared))
	for _, p := range prepared {
		if len(p.Duplicates) > 0 {
			log.Warn(ctx, "duplicate countries after normalization; keeping first row",
				logger.String("indicator", p.Indicator.String()),
				logger.Any("countries", p.Duplicates))
		}
		log.Debug(ctx, "indicator prepared",
			logger.String("indicator", p.Indicator.String()),
			logger.Int("observations", p.Long.Len()))
		tables[p.Indicator] = p.Long
	}
	return tables, nil
}

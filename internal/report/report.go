// Package report computes summary statistics over the analysis table.
package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/model"
)

// DefaultTop is the number of countries shown in rankings and trajectories.
const DefaultTop = 20

// CorrelationColumns are the analysis columns correlated by default.
var CorrelationColumns = []string{
	model.Population.String(),
	model.GDPPerCapita.String(),
	model.LifeExpectancy.String(),
	model.Pop2039Percent.String(),
	"total_medal_count",
}

// CountryTotal is a country's medal count summed over all years.
type CountryTotal struct {
	Country string
	Total   int64
}

// TopCountries returns the n countries with the most medals, ties broken by
// name. A non-positive n returns every country.
func TopCountries(rows model.AnalysisTable, n int) []CountryTotal {
	totals := make(map[string]int64)
	for _, r := range rows {
		totals[r.CountryName] += r.TotalMedalCount
	}

	out := make([]CountryTotal, 0, len(totals))
	for country, total := range totals {
		out = append(out, CountryTotal{Country: country, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Country < out[j].Country
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Point is one year of a medal trajectory.
type Point struct {
	Year   int64
	Medals int64
}

// Trajectory is a country's medal count per year, ordered by year.
type Trajectory struct {
	Country string
	Points  []Point
}

// Trajectories returns one trajectory per requested country, in the order
// given. Countries without rows get an empty trajectory.
func Trajectories(rows model.AnalysisTable, countries []string) []Trajectory {
	byCountry := make(map[string][]Point, len(countries))
	for _, c := range countries {
		byCountry[c] = nil
	}
	for _, r := range rows {
		if points, ok := byCountry[r.CountryName]; ok {
			byCountry[r.CountryName] = append(points, Point{Year: r.Year, Medals: r.TotalMedalCount})
		}
	}

	out := make([]Trajectory, len(countries))
	for i, c := range countries {
		points := byCountry[c]
		sort.SliceStable(points, func(a, b int) bool { return points[a].Year < points[b].Year })
		out[i] = Trajectory{Country: c, Points: points}
	}
	return out
}

// Matrix is a labelled correlation matrix.
type Matrix struct {
	Columns []string
	Values  *mat.SymDense
}

// At returns the correlation between columns i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.Values.At(i, j)
}

// Correlation computes the Pearson correlation matrix of the named numeric
// columns. Columns with zero variance correlate as NaN.
func Correlation(rows model.AnalysisTable, columns []string) (*Matrix, error) {
	if len(columns) == 0 {
		return nil, errors.NewInvalidInputError("Correlation", "no columns")
	}
	if len(rows) < 2 {
		return nil, errors.NewInvalidInputError("Correlation",
			fmt.Sprintf("need at least 2 rows, got %d", len(rows)))
	}

	data := mat.NewDense(len(rows), len(columns), nil)
	for j, col := range columns {
		for i, r := range rows {
			v, ok := r.Numeric(col)
			if !ok {
				return nil, errors.NewColumnNotFoundError("Correlation", col)
			}
			data.Set(i, j, v)
		}
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)
	return &Matrix{
		Columns: append([]string(nil), columns...),
		Values:  &corr,
	}, nil
}

// Summary is a five-number summary of a sample.
type Summary struct {
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Summarize returns the five-number summary of xs using empirical quantiles.
// An empty sample yields the zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	q := func(p float64) float64 { return stat.Quantile(p, stat.Empirical, sorted, nil) }
	return Summary{
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     q(0.25),
		Median: q(0.5),
		Q3:     q(0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// Split holds the medal count distribution of host and non-host records.
type Split struct {
	Host    Summary
	NonHost Summary
}

// HostSplit summarizes medal counts separately for host and non-host
// country-years.
func HostSplit(rows model.AnalysisTable) Split {
	return Split{
		Host:    Summarize(Values(rows, true)),
		NonHost: Summarize(Values(rows, false)),
	}
}

// Values returns the medal counts of host or non-host records.
func Values(rows model.AnalysisTable, hosting bool) []float64 {
	var out []float64
	for _, r := range rows {
		if (r.HostingStatus == 1) == hosting {
			out = append(out, float64(r.TotalMedalCount))
		}
	}
	return out
}

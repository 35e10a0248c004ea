// Package table provides the in-memory tabular types shared by the pipeline:
// nullable cells, wide year-indexed tables, tidy (long) tables and the Frame
// interface consumed by writers.
package table

import (
	"sort"
	"strconv"
)

// Float is a nullable float64 cell.
type Float struct {
	Value float64
	Valid bool
}

// Some returns a valid cell holding v.
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Null returns a missing cell.
func Null() Float {
	return Float{}
}

// String renders the cell the way CSV writers expect; null cells are empty.
func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// WideRow is one entity of a wide table. Values is aligned with Wide.Years.
type WideRow struct {
	Country string
	Values  []Float
}

// Wide is one row per country and one column per year.
type Wide struct {
	Name  string
	Years []int
	Rows  []WideRow
}

// NewWide creates an empty wide table with the given year columns.
// Years are sorted ascending.
func NewWide(name string, years []int) *Wide {
	ys := append([]int(nil), years...)
	sort.Ints(ys)
	return &Wide{Name: name, Years: ys}
}

// AddRow appends a row. Values must be aligned with w.Years.
func (w *Wide) AddRow(country string, values []Float) {
	w.Rows = append(w.Rows, WideRow{Country: country, Values: values})
}

// Len returns the number of rows.
func (w *Wide) Len() int {
	return len(w.Rows)
}

// YearIndex returns the column position of year, or -1.
func (w *Wide) YearIndex(year int) int {
	i := sort.SearchInts(w.Years, year)
	if i < len(w.Years) && w.Years[i] == year {
		return i
	}
	return -1
}

// Window returns a table whose columns are exactly the years [start, end).
// Years missing from w are created as null columns; years outside the window
// are dropped. Rows keep their order.
func (w *Wide) Window(start, end int) *Wide {
	years := make([]int, 0, max(end-start, 0))
	for y := start; y < end; y++ {
		years = append(years, y)
	}

	out := &Wide{Name: w.Name, Years: years, Rows: make([]WideRow, 0, len(w.Rows))}
	positions := make([]int, len(years))
	for i, y := range years {
		positions[i] = w.YearIndex(y)
	}

	for _, row := range w.Rows {
		values := make([]Float, len(years))
		for i, pos := range positions {
			if pos >= 0 && pos < len(row.Values) {
				values[i] = row.Values[pos]
			}
		}
		out.Rows = append(out.Rows, WideRow{Country: row.Country, Values: values})
	}
	return out
}

// Observation is one (country, year) cell of a tidy table.
type Observation struct {
	Country string
	Year    int
	Value   Float
}

// Long is a tidy table: one observation per (country, year).
type Long struct {
	Name string
	Rows []Observation
}

// Len returns the number of observations.
func (l *Long) Len() int {
	return len(l.Rows)
}

// Melt reshapes the wide table into tidy form, row-major: every year of the
// first country, then every year of the next.
func (w *Wide) Melt() *Long {
	out := &Long{Name: w.Name, Rows: make([]Observation, 0, len(w.Rows)*len(w.Years))}
	for _, row := range w.Rows {
		for i, year := range w.Years {
			var v Float
			if i < len(row.Values) {
				v = row.Values[i]
			}
			out.Rows = append(out.Rows, Observation{Country: row.Country, Year: year, Value: v})
		}
	}
	return out
}

// Package interpolate fills gaps in year-indexed series.
//
// Interior gaps are filled on the straight line between the nearest known
// neighbours; leading and trailing gaps are carried flat from the first and
// last known value. A series with no known value at all is set to a caller
// supplied sentinel.
package interpolate

import (
	"golang.org/x/exp/constraints"

	"github.com/paveg/medalprep/internal/table"
)

// DefaultFill is the sentinel used for rows without any known value.
const DefaultFill = -10

// Fill returns a copy of w with every row completed by Series. Years are used
// as x positions, so the table should be windowed to consecutive years first.
func Fill(w *table.Wide, fill float64) *table.Wide {
	out := &table.Wide{
		Name:  w.Name,
		Years: append([]int(nil), w.Years...),
		Rows:  make([]table.WideRow, len(w.Rows)),
	}
	xs := make([]float64, len(w.Years))
	for i, y := range w.Years {
		xs[i] = float64(y)
	}
	for i, row := range w.Rows {
		out.Rows[i] = table.WideRow{Country: row.Country, Values: SeriesAt(xs, row.Values, fill)}
	}
	return out
}

// Series fills values assuming equally spaced positions.
func Series(values []table.Float, fill float64) []table.Float {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	return SeriesAt(xs, values, fill)
}

// SeriesAt fills values located at positions xs (ascending, same length).
func SeriesAt(xs []float64, values []table.Float, fill float64) []table.Float {
	out := make([]table.Float, len(values))

	known := make([]int, 0, len(values))
	for i, v := range values {
		if v.Valid {
			known = append(known, i)
		}
	}

	if len(known) == 0 {
		for i := range out {
			out[i] = table.Some(fill)
		}
		return out
	}

	first, last := known[0], known[len(known)-1]
	for i := 0; i < first; i++ {
		out[i] = table.Some(values[first].Value)
	}
	for i := last; i < len(values); i++ {
		out[i] = table.Some(values[last].Value)
	}

	for k := 0; k < len(known)-1; k++ {
		lo, hi := known[k], known[k+1]
		out[lo] = values[lo]
		for i := lo + 1; i < hi; i++ {
			out[i] = table.Some(lerp(xs[lo], values[lo].Value, xs[hi], values[hi].Value, xs[i]))
		}
	}
	return out
}

// lerp evaluates the line through (x0, y0) and (x1, y1) at x.
func lerp[T constraints.Float](x0, y0, x1, y1, x T) T {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

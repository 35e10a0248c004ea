// Package join attaches indicator observations to country-year records.
//
// Joins are left joins on (canonical country, year): every record survives
// the join and a miss leaves the indicator null. DropIncomplete then removes
// any record with a null in any indicator, so a country-year absent from even
// one indicator table is excluded from the result.
package join

import (
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/table"
)

// Stats describes the outcome of one left join.
type Stats struct {
	Indicator model.Indicator
	Matched   int
	Missed    int
}

// BuildIndex indexes the observations of a tidy table by (country, year).
// Null observations are not indexed, so they behave like misses.
func BuildIndex(obs *table.Long) *Index {
	ix := NewIndex(obs.Len())
	for i, o := range obs.Rows {
		if !o.Value.Valid {
			continue
		}
		ix.Put(Key{Country: o.Country, Year: o.Year}, i)
	}
	return ix
}

// Left joins one indicator onto records. The input slice is not modified.
// When a key occurs more than once in obs the first observation wins.
func Left(records []model.CountryYear, ind model.Indicator, obs *table.Long) ([]model.CountryYear, Stats) {
	ix := BuildIndex(obs)
	out := make([]model.CountryYear, len(records))
	stats := Stats{Indicator: ind}

	for i, r := range records {
		positions, ok := ix.Get(Key{Country: r.Country, Year: r.Year})
		if ok {
			r.Values[ind] = obs.Rows[positions[0]].Value
			stats.Matched++
		} else {
			r.Values[ind] = table.Null()
			stats.Missed++
		}
		out[i] = r
	}
	return out, stats
}

// All joins each indicator in model.Indicators order. Indicators without a
// table leave every record null for that indicator.
func All(records []model.CountryYear, tables map[model.Indicator]*table.Long) ([]model.CountryYear, []Stats) {
	stats := make([]Stats, 0, model.NumIndicators)
	for _, ind := range model.Indicators() {
		obs, ok := tables[ind]
		if !ok {
			obs = &table.Long{Name: ind.String()}
		}
		var s Stats
		records, s = Left(records, ind, obs)
		stats = append(stats, s)
	}
	return records, stats
}

// DropIncomplete keeps only records with every indicator present.
func DropIncomplete(records []model.CountryYear) []model.CountryYear {
	out := make([]model.CountryYear, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

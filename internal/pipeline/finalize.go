package pipeline

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/paveg/medalprep/internal/model"
)

// truncate converts toward zero.
func truncate[F constraints.Float, I constraints.Signed](v F) I {
	return I(v)
}

// Finalize types the joined records and orders them by year ascending, total
// medal count descending and country ascending. Records must be complete.
func Finalize(records []model.CountryYear) model.AnalysisTable {
	rows := make(model.AnalysisTable, len(records))
	for i, r := range records {
		v := func(ind model.Indicator) float64 { return r.Values[ind].Value }

		rows[i] = model.AnalysisRow{
			CountryName:            r.Country,
			CountryCode:            r.CountryCode,
			Year:                   int64(r.Year),
			TotalMedalCount:        int64(r.TotalMedalCount),
			HostingStatus:          int64(r.HostingStatus),
			Population:             truncate[float64, int64](v(model.Population)),
			GDPPerCapita:           v(model.GDPPerCapita),
			LifeExpectancy:         v(model.LifeExpectancy),
			Pop2039Percent:         v(model.Pop2039Percent),
			UrbanPopulationPercent: v(model.UrbanPopulationPercent),
			BMIMean:                v(model.BMIMean),
			DemocracyScore:         truncate[float64, int64](v(model.DemocracyScore)),
			SurfaceArea:            truncate[float64, int64](v(model.SurfaceArea)),
		}
	}
	SortAnalysis(rows)
	return rows
}

// SortAnalysis orders rows by year ascending, total medal count descending,
// then country ascending.
func SortAnalysis(rows model.AnalysisTable) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.TotalMedalCount != b.TotalMedalCount {
			return a.TotalMedalCount > b.TotalMedalCount
		}
		return a.CountryName < b.CountryName
	})
}

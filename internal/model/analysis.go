package model

import (
	"github.com/paveg/medalprep/internal/table"
)

// AnalysisRow is a finalized country-year record with every column typed.
type AnalysisRow struct {
	CountryName            string
	CountryCode            string
	Year                   int64
	TotalMedalCount        int64
	HostingStatus          int64
	Population             int64
	GDPPerCapita           float64
	LifeExpectancy         float64
	Pop2039Percent         float64
	UrbanPopulationPercent float64
	BMIMean                float64
	DemocracyScore         int64
	SurfaceArea            int64
}

// Column order of the analysis output.
const (
	ColCountryName = iota
	ColCountryCode
	ColYear
	ColTotalMedalCount
	ColHostingStatus
	ColPopulation
	ColGDPPerCapita
	ColLifeExpectancy
	ColPop2039Percent
	ColUrbanPopulationPercent
	ColBMIMean
	ColDemocracyScore
	ColSurfaceArea
)

var analysisSchema = []table.Field{
	{Name: "country_name", Kind: table.KindString},
	{Name: "country_code", Kind: table.KindString},
	{Name: "year", Kind: table.KindInt},
	{Name: "total_medal_count", Kind: table.KindInt},
	{Name: "hosting_status", Kind: table.KindInt},
	{Name: Population.String(), Kind: table.KindInt},
	{Name: GDPPerCapita.String(), Kind: table.KindFloat},
	{Name: LifeExpectancy.String(), Kind: table.KindFloat},
	{Name: Pop2039Percent.String(), Kind: table.KindFloat},
	{Name: UrbanPopulationPercent.String(), Kind: table.KindFloat},
	{Name: BMIMean.String(), Kind: table.KindFloat},
	{Name: DemocracyScore.String(), Kind: table.KindInt},
	{Name: SurfaceArea.String(), Kind: table.KindInt},
}

// AnalysisTable adapts analysis rows to table.Frame.
type AnalysisTable []AnalysisRow

// Schema implements table.Frame.
func (t AnalysisTable) Schema() []table.Field {
	return analysisSchema
}

// Len implements table.Frame.
func (t AnalysisTable) Len() int {
	return len(t)
}

// Value implements table.Frame.
func (t AnalysisTable) Value(row, col int) any {
	r := t[row]
	switch col {
	case ColCountryName:
		return r.CountryName
	case ColCountryCode:
		return r.CountryCode
	case ColYear:
		return r.Year
	case ColTotalMedalCount:
		return r.TotalMedalCount
	case ColHostingStatus:
		return r.HostingStatus
	case ColPopulation:
		return r.Population
	case ColGDPPerCapita:
		return r.GDPPerCapita
	case ColLifeExpectancy:
		return r.LifeExpectancy
	case ColPop2039Percent:
		return r.Pop2039Percent
	case ColUrbanPopulationPercent:
		return r.UrbanPopulationPercent
	case ColBMIMean:
		return r.BMIMean
	case ColDemocracyScore:
		return r.DemocracyScore
	case ColSurfaceArea:
		return r.SurfaceArea
	default:
		return nil
	}
}

// Numeric returns the value of a numeric column by name as float64.
// The second result is false for unknown or non-numeric columns.
func (r AnalysisRow) Numeric(column string) (float64, bool) {
	for i, field := range analysisSchema {
		if field.Name != column || field.Kind == table.KindString {
			continue
		}
		switch v := (AnalysisTable{r}).Value(0, i).(type) {
		case int64:
			return float64(v), true
		case float64:
			return v, true
		}
	}
	return 0, false
}

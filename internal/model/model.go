// Package model defines the records that flow through the pipeline: raw medal
// and host rows, tally entries, joined country-year records and finalized
// analysis rows.
package model

import (
	"fmt"
	"strings"

	"github.com/paveg/medalprep/internal/table"
)

// MedalRecord is one awarded medal.
type MedalRecord struct {
	GameSlug    string
	CountryName string
	CountryCode string
	MedalType   string
}

// Host is one edition of the Games.
type Host struct {
	GameSlug string
	Season   string
	Year     int
	Location string
}

// Indicator identifies a socioeconomic indicator column.
type Indicator int

// Join and output order of the indicators.
const (
	Population Indicator = iota
	GDPPerCapita
	LifeExpectancy
	Pop2039Percent
	UrbanPopulationPercent
	BMIMean
	DemocracyScore
	SurfaceArea

	NumIndicators
)

var indicatorNames = [NumIndicators]string{
	Population:             "population",
	GDPPerCapita:           "gdp_per_capita",
	LifeExpectancy:         "life_expectancy",
	Pop2039Percent:         "pop_20_39_percent",
	UrbanPopulationPercent: "urban_population_percent",
	BMIMean:                "bmi_mean",
	DemocracyScore:         "democracy_score",
	SurfaceArea:            "surface_area",
}

// String returns the output column name of the indicator.
func (i Indicator) String() string {
	if i < 0 || i >= NumIndicators {
		return fmt.Sprintf("indicator(%d)", int(i))
	}
	return indicatorNames[i]
}

// Integral reports whether the indicator is emitted as an integer column.
func (i Indicator) Integral() bool {
	switch i {
	case Population, DemocracyScore, SurfaceArea:
		return true
	default:
		return false
	}
}

// Indicators returns every indicator in join order.
func Indicators() []Indicator {
	out := make([]Indicator, NumIndicators)
	for i := range out {
		out[i] = Indicator(i)
	}
	return out
}

// ParseIndicator maps a column name to its Indicator.
func ParseIndicator(name string) (Indicator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range indicatorNames {
		if n == name {
			return Indicator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown indicator: %s", name)
}

// CountryYear is the joined record keyed by canonical country and year.
// Values is indexed by Indicator; null cells are join misses.
type CountryYear struct {
	Country         string
	CountryCode     string
	Year            int
	TotalMedalCount int
	HostingStatus   int
	Values          [NumIndicators]table.Float
}

// Complete reports whether every indicator value is present.
func (r CountryYear) Complete() bool {
	for _, v := range r.Values {
		if !v.Valid {
			return false
		}
	}
	return true
}

package model_test

import (
	"testing"

	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicators(t *testing.T) {
	all := model.Indicators()
	require.Len(t, all, int(model.NumIndicators))
	assert.Equal(t, model.Population, all[0])
	assert.Equal(t, model.SurfaceArea, all[len(all)-1])

	for _, ind := range all {
		parsed, err := model.ParseIndicator(ind.String())
		require.NoError(t, err)
		assert.Equal(t, ind, parsed)
	}

	_, err := model.ParseIndicator("gini")
	assert.Error(t, err)

	assert.True(t, model.Population.Integral())
	assert.True(t, model.DemocracyScore.Integral())
	assert.False(t, model.GDPPerCapita.Integral())
}

func TestCountryYearComplete(t *testing.T) {
	var r model.CountryYear
	assert.False(t, r.Complete())

	for i := range r.Values {
		r.Values[i] = table.Some(1)
	}
	assert.True(t, r.Complete())

	r.Values[model.BMIMean] = table.Null()
	assert.False(t, r.Complete())
}

func TestAnalysisTableFrame(t *testing.T) {
	rows := model.AnalysisTable{{
		CountryName:     "Kenya",
		CountryCode:     "KEN",
		Year:            2016,
		TotalMedalCount: 13,
		Population:      48_000_000,
		GDPPerCapita:    4100.5,
		DemocracyScore:  9,
	}}

	cols := table.Columns(rows)
	assert.Equal(t, "country_name", cols[0])
	assert.Equal(t, "surface_area", cols[len(cols)-1])
	assert.Len(t, cols, 13)

	assert.Equal(t, "Kenya", rows.Value(0, model.ColCountryName))
	assert.Equal(t, int64(2016), rows.Value(0, model.ColYear))
	assert.Equal(t, 4100.5, rows.Value(0, model.ColGDPPerCapita))

	v, ok := rows[0].Numeric("total_medal_count")
	assert.True(t, ok)
	assert.Equal(t, 13.0, v)

	_, ok = rows[0].Numeric("country_name")
	assert.False(t, ok)
}

func TestTallyTableFrame(t *testing.T) {
	rows := model.TallyTable{{CountryName: "Fiji", CountryCode: "FIJ", GameSlug: "rio-2016", Total: 1}}
	assert.Equal(t, []string{"country_name", "country_code", "slug_game", "total_medal_count"}, table.Columns(rows))
	assert.Equal(t, int64(1), rows.Value(0, 3))
	assert.Equal(t, "rio-2016", rows.Value(0, 2))
}

func TestAnalysisRowNumeric(t *testing.T) {
	r := model.AnalysisRow{
		CountryName:    "Kenya",
		Year:           2016,
		Population:     48_000_000,
		GDPPerCapita:   3012.5,
		DemocracyScore: -2,
	}

	tests := []struct {
		column string
		want   float64
		ok     bool
	}{
		{column: "year", want: 2016, ok: true},
		{column: "population", want: 48_000_000, ok: true},
		{column: "gdp_per_capita", want: 3012.5, ok: true},
		{column: "democracy_score", want: -2, ok: true},
		{column: "country_name", ok: false},
		{column: "unknown", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, ok := r.Numeric(tt.column)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

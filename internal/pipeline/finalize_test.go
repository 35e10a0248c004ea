package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/pipeline"
	"github.com/paveg/medalprep/internal/table"
)

func complete(country string, year, total int, v float64) model.CountryYear {
	r := model.CountryYear{Country: country, CountryCode: country[:1], Year: year, TotalMedalCount: total}
	for i := range r.Values {
		r.Values[i] = table.Some(v)
	}
	return r
}

func TestFinalize(t *testing.T) {
	r := complete("Kenya", 2016, 13, 0)
	r.HostingStatus = 0
	r.Values[model.Population] = table.Some(48_461_567.9)
	r.Values[model.GDPPerCapita] = table.Some(3012.5)
	r.Values[model.DemocracyScore] = table.Some(-0.7)
	r.Values[model.SurfaceArea] = table.Some(580_367.99)

	rows := pipeline.Finalize([]model.CountryYear{r})

	require.Len(t, rows, 1)
	got := rows[0]
	assert.Equal(t, "Kenya", got.CountryName)
	assert.Equal(t, int64(2016), got.Year)
	assert.Equal(t, int64(13), got.TotalMedalCount)
	assert.Equal(t, int64(48_461_567), got.Population, "truncated")
	assert.Equal(t, 3012.5, got.GDPPerCapita)
	assert.Equal(t, int64(0), got.DemocracyScore, "truncated toward zero")
	assert.Equal(t, int64(580_367), got.SurfaceArea)
}

func TestFinalizeOrder(t *testing.T) {
	records := []model.CountryYear{
		complete("Peru", 2016, 1, 1),
		complete("Kenya", 2012, 11, 1),
		complete("Chad", 2016, 13, 1),
		complete("Brazil", 2016, 13, 1),
		complete("Fiji", 2016, 2, 1),
	}

	rows := pipeline.Finalize(records)

	var got []string
	for _, r := range rows {
		got = append(got, r.CountryName)
	}
	assert.Equal(t, []string{"Kenya", "Brazil", "Chad", "Fiji", "Peru"}, got)
}

package tally_test

import (
	"testing"

	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/tally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hosts = []model.Host{
	{GameSlug: "rio-2016", Season: "Summer", Year: 2016, Location: "Brazil"},
	{GameSlug: "london-2012", Season: "Summer", Year: 2012, Location: "Great Britain"},
	{GameSlug: "sochi-2014", Season: "Winter", Year: 2014, Location: "Russian Federation"},
}

func medal(slug, country, code, kind string) model.MedalRecord {
	return model.MedalRecord{GameSlug: slug, CountryName: country, CountryCode: code, MedalType: kind}
}

func TestCompute(t *testing.T) {
	medals := []model.MedalRecord{
		medal("rio-2016", "Kenya", "KEN", model.MedalGold),
		medal("rio-2016", "Kenya", "KEN", model.MedalSilver),
		medal("rio-2016", "Fiji", "FIJ", model.MedalGold),
		medal("rio-2016", "Brazil", "BRA", model.MedalGold),
		medal("rio-2016", "Brazil", "BRA", model.MedalBronze),
		medal("rio-2016", "Brazil", "BRA", "bronze"),
		medal("london-2012", "Kenya", "KEN", model.MedalBronze),
		medal("sochi-2014", "Norway", "NOR", model.MedalGold),
		medal("rio-2016", "Independent Olympic Athletes", "", model.MedalGold),
		medal("paris-1900", "France", "FRA", model.MedalGold),
	}

	entries := tally.Compute(hosts, medals, tally.DefaultSeason)

	require.Len(t, entries, 4)

	type row struct {
		slug, country string
		total         int
	}
	var got []row
	for _, e := range entries {
		got = append(got, row{e.GameSlug, e.CountryName, e.Total})
	}
	assert.Equal(t, []row{
		{"london-2012", "Kenya", 1},
		{"rio-2016", "Brazil", 3},
		{"rio-2016", "Kenya", 2},
		{"rio-2016", "Fiji", 1},
	}, got)

	assert.Equal(t, map[string]int{model.MedalGold: 1, model.MedalBronze: 2}, entries[1].ByType)
	assert.Equal(t, "BRA", entries[1].CountryCode)
}

func TestComputeWinter(t *testing.T) {
	entries := tally.Compute(hosts, []model.MedalRecord{
		medal("sochi-2014", "Norway", "NOR", model.MedalGold),
		medal("rio-2016", "Kenya", "KEN", model.MedalGold),
	}, "Winter")

	require.Len(t, entries, 1)
	assert.Equal(t, "Norway", entries[0].CountryName)
}

func TestComputeEmpty(t *testing.T) {
	assert.Empty(t, tally.Compute(nil, nil, tally.DefaultSeason))
	assert.Empty(t, tally.Compute(hosts, nil, tally.DefaultSeason))
}

func TestSeasonSlugs(t *testing.T) {
	slugs := tally.SeasonSlugs(hosts, "Summer")
	assert.Len(t, slugs, 2)
	assert.Equal(t, 2012, slugs["london-2012"].Year)
	assert.NotContains(t, slugs, "sochi-2014")
}

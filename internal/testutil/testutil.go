// Package testutil provides fixtures shared by the medalprep package tests.
//
// NewDataset writes a complete, consistent set of pipeline inputs into a
// temporary directory: a host list, medal records and one wide file per
// indicator. Options carve deliberate gaps into the indicator files.
package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paveg/medalprep/internal/config"
	"github.com/paveg/medalprep/internal/model"
)

const (
	// defaultFirstYear is the first Games year of a default dataset.
	defaultFirstYear = 2000
	// defaultGap is the number of years between Games.
	defaultGap = 4
)

// WriteCSV writes rows to dir/name and returns the path.
func WriteCSV(tb testing.TB, dir, name string, rows [][]string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(tb, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(tb, w.WriteAll(rows))
	return path
}

// Dataset is a set of pipeline inputs on disk.
type Dataset struct {
	Dir        string
	Medals     string
	Hosts      string
	Indicators map[string]string // indicator column -> file name
	Countries  []string
	Years      []int
}

// Slug returns the game slug of the Games held in year.
func Slug(year int) string {
	return fmt.Sprintf("games-%d", year)
}

// DatasetOption configures NewDataset.
type DatasetOption func(*datasetConfig)

type datasetConfig struct {
	countries []string
	years     []int
	medals    map[string]int // country -> medals per Games
	hosts     map[int]string // year -> location
	omit      map[model.Indicator]map[string]bool
}

// WithCountries sets the competing countries. Each wins one more medal per
// Games than the country before it.
func WithCountries(countries ...string) DatasetOption {
	return func(cfg *datasetConfig) {
		cfg.countries = countries
	}
}

// WithGames sets the number of Summer Games, four years apart.
func WithGames(n int) DatasetOption {
	return func(cfg *datasetConfig) {
		cfg.years = make([]int, n)
		for i := range n {
			cfg.years[i] = defaultFirstYear + i*defaultGap
		}
	}
}

// WithHost makes location the host of the Games in year.
func WithHost(year int, location string) DatasetOption {
	return func(cfg *datasetConfig) {
		cfg.hosts[year] = location
	}
}

// WithoutCountry leaves country out of the indicator's wide file.
func WithoutCountry(ind model.Indicator, country string) DatasetOption {
	return func(cfg *datasetConfig) {
		if cfg.omit[ind] == nil {
			cfg.omit[ind] = make(map[string]bool)
		}
		cfg.omit[ind][country] = true
	}
}

// NewDataset writes a dataset into a fresh temporary directory. By default two
// countries, "Atlantis" and "Borduria", compete at two Summer Games hosted by
// "Elsewhere", and every indicator has a value for every country and year.
func NewDataset(tb testing.TB, opts ...DatasetOption) Dataset {
	tb.Helper()

	cfg := &datasetConfig{
		countries: []string{"Atlantis", "Borduria"},
		hosts:     make(map[int]string),
		omit:      make(map[model.Indicator]map[string]bool),
	}
	WithGames(2)(cfg)
	for _, opt := range opts {
		opt(cfg)
	}

	ds := Dataset{
		Dir:        tb.TempDir(),
		Medals:     "medals.csv",
		Hosts:      "hosts.csv",
		Indicators: make(map[string]string),
		Countries:  cfg.countries,
		Years:      cfg.years,
	}

	hosts := [][]string{{"game_slug", "game_location", "game_name", "game_season", "game_year"}}
	for _, y := range cfg.years {
		location := cfg.hosts[y]
		if location == "" {
			location = "Elsewhere"
		}
		hosts = append(hosts, []string{Slug(y), location, fmt.Sprintf("Games %d", y), "Summer", strconv.Itoa(y)})
	}
	// Winter Games never reach the tally.
	hosts = append(hosts, []string{"winter-2002", "Elsewhere", "Winter 2002", "Winter", "2002"})
	WriteCSV(tb, ds.Dir, ds.Hosts, hosts)

	medals := [][]string{{"discipline_title", "slug_game", "medal_type", "country_name", "country_code"}}
	for _, y := range cfg.years {
		for i, c := range cfg.countries {
			for range i + 1 {
				medals = append(medals, []string{"Athletics", Slug(y), "GOLD", c, code(c)})
			}
		}
	}
	medals = append(medals, []string{"Skiing", "winter-2002", "GOLD", cfg.countries[0], code(cfg.countries[0])})
	WriteCSV(tb, ds.Dir, ds.Medals, medals)

	for _, ind := range model.Indicators() {
		header := []string{"country"}
		for _, y := range cfg.years {
			header = append(header, strconv.Itoa(y))
		}
		rows := [][]string{header}
		for i, c := range cfg.countries {
			if cfg.omit[ind][c] {
				continue
			}
			row := []string{c}
			for j := range cfg.years {
				row = append(row, IndicatorValue(ind, i, j))
			}
			rows = append(rows, row)
		}
		name := ind.String() + ".csv"
		WriteCSV(tb, ds.Dir, name, rows)
		ds.Indicators[ind.String()] = name
	}
	return ds
}

// IndicatorValue is the raw cell written for country index i in year index j.
func IndicatorValue(ind model.Indicator, i, j int) string {
	return strconv.Itoa((int(ind)+1)*100 + i*10 + j)
}

// Config returns a run configuration reading the dataset and writing into a
// fresh temporary directory. The window covers every Games year.
func (ds Dataset) Config(tb testing.TB) config.Config {
	tb.Helper()

	cfg := config.NewConfig()
	cfg.DataDir = ds.Dir
	cfg.Medals = ds.Medals
	cfg.Hosts = ds.Hosts
	cfg.Indicators = ds.Indicators
	cfg.OutputDir = tb.TempDir()
	cfg.StartYear = ds.Years[0]
	cfg.EndYear = ds.Years[len(ds.Years)-1] + 1
	cfg.Workers = 2
	return cfg
}

func code(country string) string {
	if len(country) < 3 {
		return country
	}
	return strings.ToUpper(country[:3])
}

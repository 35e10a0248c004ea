// Package tally counts medals per country and edition of the Games.
package tally

import (
	"sort"
	"strings"

	"github.com/paveg/medalprep/internal/model"
)

// DefaultSeason is the season tallied when none is configured.
const DefaultSeason = "Summer"

type groupKey struct {
	countryName string
	countryCode string
	gameSlug    string
}

// SeasonSlugs returns the game slugs of hosts held in season.
func SeasonSlugs(hosts []model.Host, season string) map[string]model.Host {
	slugs := make(map[string]model.Host)
	for _, h := range hosts {
		if h.Season == season {
			slugs[h.GameSlug] = h
		}
	}
	return slugs
}

// Compute tallies the medals won at games of the given season.
//
// Medal records from other seasons are ignored, as are records with an empty
// country name, country code, game slug or medal type. Entries are sorted by
// game slug ascending and total descending, ties broken by country name.
func Compute(hosts []model.Host, medals []model.MedalRecord, season string) []model.TallyEntry {
	slugs := SeasonSlugs(hosts, season)

	groups := make(map[groupKey]*model.TallyEntry)
	for _, m := range medals {
		if _, ok := slugs[m.GameSlug]; !ok {
			continue
		}
		if m.CountryName == "" || m.CountryCode == "" || m.GameSlug == "" || m.MedalType == "" {
			continue
		}

		key := groupKey{countryName: m.CountryName, countryCode: m.CountryCode, gameSlug: m.GameSlug}
		entry, ok := groups[key]
		if !ok {
			entry = &model.TallyEntry{
				CountryName: m.CountryName,
				CountryCode: m.CountryCode,
				GameSlug:    m.GameSlug,
				ByType:      make(map[string]int),
			}
			groups[key] = entry
		}
		entry.ByType[strings.ToUpper(m.MedalType)]++
		entry.Total++
	}

	entries := make([]model.TallyEntry, 0, len(groups))
	for _, e := range groups {
		entries = append(entries, *e)
	}
	Sort(entries)
	return entries
}

// Sort orders entries by game slug ascending, then total descending, then
// country name and code ascending.
func Sort(entries []model.TallyEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.GameSlug != b.GameSlug {
			return a.GameSlug < b.GameSlug
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.CountryName != b.CountryName {
			return a.CountryName < b.CountryName
		}
		return a.CountryCode < b.CountryCode
	})
}

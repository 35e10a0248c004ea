package pipeline

import (
	"strings"

	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/normalize"
	"github.com/paveg/medalprep/internal/table"
)

// BuildRecords turns tally entries into one country-year record per
// canonical country and Games year.
//
// Entries whose game slug has no host are skipped. Entries that collapse to
// the same canonical country in the same year are merged: medal counts are
// summed, the first country code is kept and the record is a host record if
// any merged entry was. The result is ordered by first appearance. The second
// result counts merged entries.
func BuildRecords(entries []model.TallyEntry, hosts []model.Host, n *normalize.Normalizer) ([]model.CountryYear, int) {
	bySlug := make(map[string]model.Host, len(hosts))
	for _, h := range hosts {
		bySlug[h.GameSlug] = h
	}

	type key struct {
		country string
		year    int
	}
	positions := make(map[key]int)
	records := make([]model.CountryYear, 0, len(entries))
	merged := 0

	for _, e := range entries {
		host, ok := bySlug[e.GameSlug]
		if !ok {
			continue
		}

		country := n.Canonical(e.CountryName)
		hosting := 0
		if IsHost(n, country, host.Location) {
			hosting = 1
		}

		k := key{country: country, year: host.Year}
		if pos, ok := positions[k]; ok {
			records[pos].TotalMedalCount += e.Total
			records[pos].HostingStatus = max(records[pos].HostingStatus, hosting)
			merged++
			continue
		}

		r := model.CountryYear{
			Country:         country,
			CountryCode:     e.CountryCode,
			Year:            host.Year,
			TotalMedalCount: e.Total,
			HostingStatus:   hosting,
		}
		for i := range r.Values {
			r.Values[i] = table.Null()
		}
		positions[k] = len(records)
		records = append(records, r)
	}
	return records, merged
}

// IsHost reports whether the canonical country hosted at location. A location
// naming several countries separated by commas matches any of them.
func IsHost(n *normalize.Normalizer, country, location string) bool {
	if location == "" {
		return false
	}
	if n.Canonical(location) == country {
		return true
	}
	for _, part := range strings.Split(location, ",") {
		if n.Canonical(part) == country {
			return true
		}
	}
	return false
}

package model

import (
	"github.com/paveg/medalprep/internal/table"
)

// Medal types as they appear in the medal source.
const (
	MedalGold   = "GOLD"
	MedalSilver = "SILVER"
	MedalBronze = "BRONZE"
)

// TallyEntry is the medal count of one country at one edition of the Games.
type TallyEntry struct {
	CountryName string
	CountryCode string
	GameSlug    string
	ByType      map[string]int
	Total       int
}

// TallyTable adapts tally entries to table.Frame.
type TallyTable []TallyEntry

var tallySchema = []table.Field{
	{Name: "country_name", Kind: table.KindString},
	{Name: "country_code", Kind: table.KindString},
	{Name: "slug_game", Kind: table.KindString},
	{Name: "total_medal_count", Kind: table.KindInt},
}

// Schema implements table.Frame.
func (t TallyTable) Schema() []table.Field {
	return tallySchema
}

// Len implements table.Frame.
func (t TallyTable) Len() int {
	return len(t)
}

// Value implements table.Frame.
func (t TallyTable) Value(row, col int) any {
	e := t[row]
	switch col {
	case 0:
		return e.CountryName
	case 1:
		return e.CountryCode
	case 2:
		return e.GameSlug
	default:
		return int64(e.Total)
	}
}

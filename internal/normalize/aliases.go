package normalize

import (
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// defaultAliases maps the labels used by the Olympic sources (historical teams,
// official long names) to the labels used by the indicator tables.
var defaultAliases = map[string]string{
	"United States of America":              "USA",
	"United States":                         "USA",
	"Great Britain":                         "UK",
	"United Kingdom":                        "UK",
	"People's Republic of China":            "China",
	"Republic of Korea":                     "South Korea",
	"Korea":                                 "South Korea",
	"Democratic People's Republic of Korea": "North Korea",
	"Russian Federation":                    "Russia",
	"ROC":                                   "Russia",
	"Olympic Athletes from Russia":          "Russia",
	"Soviet Union":                          "Russia",
	"USSR":                                  "Russia",
	"Unified Team":                          "Russia",
	"Islamic Republic of Iran":              "Iran",
	"Chinese Taipei":                        "Taiwan",
	"Czechia":                               "Czech Republic",
	"Czechoslovakia":                        "Czech Republic",
	"Bohemia":                               "Czech Republic",
	"Slovakia":                              "Slovak Republic",
	"Kyrgyzstan":                            "Kyrgyz Republic",
	"Federal Republic of Germany":           "Germany",
	"West Germany":                          "Germany",
	"German Democratic Republic (Germany)":  "Germany",
	"East Germany":                          "Germany",
	"Republic of Moldova":                   "Moldova",
	"Yugoslavia":                            "Serbia",
	"Serbia and Montenegro":                 "Serbia",
	"Syrian Arab Republic":                  "Syria",
	"Côte d'Ivoire":                         "Cote d'Ivoire",
	"Ivory Coast":                           "Cote d'Ivoire",
	"Macedonia":                             "North Macedonia",
	"United Republic of Tanzania":           "Tanzania",
	"Saint Lucia":                           "St. Lucia",
	"Australasia":                           "Australia",
	"Türkiye":                               "Turkey",

	"The Former Yugoslav Republic of Macedonia": "North Macedonia",
}

// DefaultAliases returns a copy of the built-in alias table.
func DefaultAliases() map[string]string {
	return maps.Clone(defaultAliases)
}

// LoadAliases reads extra aliases from a YAML mapping of label to canonical label.
func LoadAliases(r io.Reader) (map[string]string, error) {
	var aliases map[string]string
	if err := yaml.NewDecoder(r).Decode(&aliases); err != nil {
		if err == io.EOF {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decoding alias file: %w", err)
	}
	if aliases == nil {
		aliases = map[string]string{}
	}
	return aliases, nil
}

// Package normalize turns raw source values into join-ready ones: country
// labels into their canonical form and scale-suffixed numeric strings into
// float64.
package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/paveg/medalprep/internal/errors"
)

// Normalizer maps country labels to canonical labels.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a normalizer from the built-in alias table extended
// (and overridden) by extra. The combined table must not chain: a canonical
// label may not itself be an alias of a different label, so that Canonical
// is idempotent.
func NewNormalizer(extra map[string]string) (*Normalizer, error) {
	combined := DefaultAliases()
	for k, v := range extra {
		combined[k] = v
	}

	aliases := make(map[string]string, len(combined))
	for k, v := range combined {
		key, val := clean(k), clean(v)
		if key == "" || val == "" {
			return nil, errors.NewInvalidInputError("NewNormalizer",
				fmt.Sprintf("empty alias entry %q -> %q", k, v))
		}
		if key == val {
			continue
		}
		aliases[key] = val
	}

	for k, v := range aliases {
		if next, ok := aliases[v]; ok {
			return nil, errors.NewInvalidInputError("NewNormalizer",
				fmt.Sprintf("alias chain %q -> %q -> %q", k, v, next))
		}
	}

	return &Normalizer{aliases: aliases}, nil
}

// Canonical returns the canonical label for raw. Unmapped labels pass through
// with whitespace and unicode form normalized.
func (n *Normalizer) Canonical(raw string) string {
	name := clean(raw)
	if canonical, ok := n.aliases[name]; ok {
		return canonical
	}
	return name
}

// Len returns the number of aliases known to the normalizer.
func (n *Normalizer) Len() int {
	return len(n.aliases)
}

// clean applies NFC normalization and collapses runs of whitespace.
func clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

package normalize

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/paveg/medalprep/internal/errors"
)

const opParseScaledNumber = "ParseScaledNumber"

// errUnrecognized is the cause attached to values that are neither numeric nor suffixed.
var errUnrecognized = stderrors.New("not a number and no recognized scale suffix")

// scaleExponents maps a trailing suffix to its power of ten.
var scaleExponents = map[byte]int{
	'k': 3,
	'K': 3,
	'M': 6,
	'B': 9,
}

// dashReplacer turns unicode minus, en dash and em dash into an ASCII minus.
var dashReplacer = strings.NewReplacer(
	"−", "-",
	"–", "-",
	"—", "-",
)

// ParseScaledNumber converts strings such as "12.5", "1.2K", "1.2 K", "3M",
// "4B", "2.5e-3K" or "−7" into float64. A lone suffix ("k", "M") stands for
// one unit of that scale. The scale is applied by shifting the decimal
// exponent, so "1.2K" is exactly 1200.
func ParseScaledNumber(raw string) (float64, error) {
	s := dashReplacer.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, errors.NewParseError(opParseScaledNumber, raw, errUnrecognized)
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	exp, ok := scaleExponents[s[len(s)-1]]
	if !ok {
		return 0, errors.NewParseError(opParseScaledNumber, raw, errUnrecognized)
	}

	mantissa := strings.TrimSpace(s[:len(s)-1])
	switch mantissa {
	case "", "+":
		mantissa = "1"
	case "-":
		mantissa = "-1"
	}

	// Fold an exponent already on the mantissa into the scale exponent.
	if i := strings.IndexAny(mantissa, "eE"); i >= 0 {
		e, err := strconv.Atoi(mantissa[i+1:])
		if err != nil {
			return 0, errors.NewParseError(opParseScaledNumber, raw, err)
		}
		mantissa, exp = mantissa[:i], exp+e
	}

	v, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(exp), 64)
	if err != nil {
		return 0, errors.NewParseError(opParseScaledNumber, raw, err)
	}
	return v, nil
}

package extraction

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/guregu/null/v5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeText folds the compatibility characters found in OCR output and PDF text layers
// (ligatures, non breaking spaces, full width digits) and removes invisible format characters.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cf)))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// day first layouts, tried in order
var dateLayouts = []string{
	"2 Jan 06",
	"2 Jan 2006",
	"2 January 2006",
	"2 January 06",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
}

func parseDate(value string) null.Time {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return null.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return null.TimeFrom(t)
		}
	}
	return null.Time{}
}

// parseAmount reads a monetary amount, ignoring thousands separators and the pound sign. A trailing
// or leading minus, or parentheses, make the amount negative.
func parseAmount(value string) null.Float {
	value = strings.TrimSpace(value)
	value = strings.NewReplacer(",", "", "£", "", " ", "").Replace(value)
	if value == "" {
		return null.Float{}
	}

	negative := false
	switch {
	case strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")"):
		negative = true
		value = value[1 : len(value)-1]
	case strings.HasSuffix(value, "-"):
		negative = true
		value = strings.TrimSuffix(value, "-")
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return null.Float{}
	}
	if negative {
		f = -f
	}
	return null.FloatFrom(f)
}

// roundCents avoids binary noise such as 0.30000000000000004 in computed amounts
func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}

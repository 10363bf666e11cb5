package enrich

import (
	"regexp"
	"strconv"
	"strings"
)

// dollarRe matches explicit dollar figures ("$5,000", "$10000.50"). Plain
// numbers are ignored so years and reference codes never become amounts.
var dollarRe = regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d+)?)`)

// extractAmountRange pulls an amount range out of listing text. One figure
// is treated as a maximum ("grants of up to $5,000"), unless the text says
// minimum; two or more become a [min, max] range.
func extractAmountRange(text string) (*float64, *float64, bool) {
	matches := dollarRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, nil, false
	}

	var amounts []float64
	for _, m := range matches {
		clean := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(clean, 64); err == nil && v > 0 {
			amounts = append(amounts, v)
		}
	}
	if len(amounts) == 0 {
		return nil, nil, false
	}

	lower := strings.ToLower(text)
	if len(amounts) == 1 {
		v := amounts[0]
		if strings.Contains(lower, "minimum") || strings.Contains(lower, "at least") {
			return &v, nil, true
		}
		return nil, &v, true
	}

	min, max := amounts[0], amounts[0]
	for _, a := range amounts {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return &min, &max, true
}

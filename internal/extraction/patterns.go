package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns holds the compiled field patterns the extractor scans with.
// Each pattern's first capture group is the numeric (or date) value.
type Patterns struct {
	Energy *regexp.Regexp
	Water  *regexp.Regexp
	Fuel   *regexp.Regexp
	Waste  *regexp.Regexp
	Amount *regexp.Regexp
	Date   *regexp.Regexp
}

// DefaultPatterns returns the built-in field patterns for Indian utility
// bills: kWh/unit counters, litre volumes, kg weights, rupee amounts with
// comma grouping, and D/M/Y dates.
func DefaultPatterns() *Patterns {
	return &Patterns{
		Energy: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:kwh|kw|units?)\b`),
		Water:  regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:litres?|liters?|l)\b`),
		Fuel:   regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:litres?|liters?|ltrs?|l)\b`),
		Waste:  regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:kgs?|kilograms?)\b`),
		Amount: regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*:?\s*(\d+(?:,\d+)*(?:\.\d+)?)`),
		Date:   regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	}
}

// number returns the first numeric match of re in text. Grouping commas are
// stripped before parsing; a match that still fails to parse is treated as
// absent. Later matches are ignored: restatements and totals further down a
// bill are considered less reliable than the first occurrence.
func number(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// date returns the first well-formed date match verbatim, without
// normalization. The source-text format is preserved for display.
func date(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

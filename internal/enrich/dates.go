package enrich

import (
	"regexp"
	"strings"
	"time"

	"github.com/wyndham/grant-radar/internal/models"
)

// closeMarkerRe finds a "close(s/d)"/"deadline" marker followed within a
// short gap by a run of date-like characters. The capture is intentionally
// generous; parseDayFirst sorts out what it actually means.
var closeMarkerRe = regexp.MustCompile(`(?i)(close[sd]?|deadline)[^0-9A-Za-z]{0,10}([A-Za-z0-9 ,/\-:]+)`)

// ResolveDate parses a canonical calendar date: strict ISO first, then the
// same with slashes swapped for dashes (e.g. "2025/01/31"). Anything else is
// unresolved; parse failure is an outcome, not an error.
func ResolveDate(s string) models.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return models.DateOf(t)
	}
	if t, err := time.Parse("2006-01-02", strings.ReplaceAll(s, "/", "-")); err == nil {
		return models.DateOf(t)
	}
	return models.Date{}
}

// ResolveStamp parses a last-seen stamp, which may be a plain date or an
// ISO-8601 date-time, canonicalized to the calendar date.
func ResolveStamp(s string) models.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}
	if d := ResolveDate(s); d.Resolved {
		return d
	}

	s = strings.ReplaceAll(s, "/", "-")
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSuffix(s, "Z")); err == nil {
			return models.DateOf(t)
		}
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateOf(t)
		}
	}
	return models.Date{}
}

// ExtractCloseDate scans free text for a closing-date phrase ("closes 30
// June 2026", "Deadline: 30/06/2026") and parses the trailing candidate with
// day-before-month precedence.
func ExtractCloseDate(text string) models.Date {
	m := closeMarkerRe.FindStringSubmatch(text)
	if m == nil {
		return models.Date{}
	}
	return parseDayFirst(m[2])
}

var dayFirstLayouts = []string{
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
}

var (
	isoDateRe   = regexp.MustCompile(`\b(20\d{2})-(\d{2})-(\d{2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](20\d{2})\b`)
	monthNameRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?,?\s+(20\d{2})\b`)
	monthLeadRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(20\d{2})\b`)
)

// parseDayFirst interprets a date-like candidate with the Australian
// day-first convention. The whole candidate is tried against known layouts,
// then regexes pick a date token out of surrounding words ("30 June 2026 at
// 5pm").
func parseDayFirst(candidate string) models.Date {
	candidate = strings.TrimSpace(strings.Trim(candidate, " ,:-"))
	if candidate == "" {
		return models.Date{}
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return models.DateOf(t)
		}
	}

	if m := isoDateRe.FindString(candidate); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return models.DateOf(t)
		}
	}
	if m := slashDateRe.FindStringSubmatch(candidate); m != nil {
		// day/month/year
		s := m[1] + "/" + m[2] + "/" + m[3]
		if t, err := time.Parse("2/1/2006", s); err == nil {
			return models.DateOf(t)
		}
	}
	if m := monthNameRe.FindStringSubmatch(candidate); m != nil {
		s := m[1] + " " + m[2] + " " + m[3]
		if t, err := time.Parse("2 January 2006", s); err == nil {
			return models.DateOf(t)
		}
		if t, err := time.Parse("2 Jan 2006", s); err == nil {
			return models.DateOf(t)
		}
	}
	if m := monthLeadRe.FindStringSubmatch(candidate); m != nil {
		s := m[2] + " " + m[1] + " " + m[3]
		if t, err := time.Parse("2 January 2006", s); err == nil {
			return models.DateOf(t)
		}
		if t, err := time.Parse("2 Jan 2006", s); err == nil {
			return models.DateOf(t)
		}
	}

	return models.Date{}
}

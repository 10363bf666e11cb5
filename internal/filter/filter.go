// Package filter applies multi-criteria predicates and temporal views over
// a normalized opportunity catalog. Every function is pure: no state is
// held between calls and input slices are never reordered in place.
package filter

import (
	"strings"

	"github.com/wyndham/grant-radar/internal/models"
)

// Criteria is a conjunctive filter request. Empty fields impose no
// constraint. A record with unset jurisdiction always passes the
// jurisdiction criterion: the field can be impossible to infer, and hiding
// such records silently is worse than the occasional out-of-scope hit.
type Criteria struct {
	Types         []string
	Jurisdictions []string
	Audiences     []string
	Disciplines   []string
	AmountMin     *float64
	AmountMax     *float64
	Query         string
	LocalityOnly  bool
}

// Apply returns the subset of items matching every supplied criterion,
// preserving input order. lga is the configured locality name consulted by
// LocalityOnly.
func Apply(items []models.Opportunity, c Criteria, lga string) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range items {
		if matches(o, c, lga) {
			out = append(out, o)
		}
	}
	return out
}

func matches(o models.Opportunity, c Criteria, lga string) bool {
	if len(c.Types) > 0 && !contains(c.Types, o.Type) {
		return false
	}
	if len(c.Jurisdictions) > 0 && o.Jurisdiction != "" && !contains(c.Jurisdictions, o.Jurisdiction) {
		return false
	}
	if len(c.Audiences) > 0 && !intersects(o.Audience, c.Audiences) {
		return false
	}
	if len(c.Disciplines) > 0 && !intersects(o.Discipline, c.Disciplines) {
		return false
	}

	// Amount range: benefit of the doubt. Only a known bound can exclude.
	if c.AmountMin != nil && o.AmountMax != nil && *o.AmountMax < *c.AmountMin {
		return false
	}
	if c.AmountMax != nil && o.AmountMin != nil && *o.AmountMin > *c.AmountMax {
		return false
	}

	if c.LocalityOnly && lga != "" && !MentionsLocality(o, lga) {
		return false
	}

	if c.Query != "" && !queryMatches(o, c.Query) {
		return false
	}

	return true
}

// MentionsLocality reports whether the record carries the locality LGA tag
// or names the locality anywhere in its title, description, or agency.
func MentionsLocality(o models.Opportunity, lga string) bool {
	if o.LGA == lga {
		return true
	}
	blob := strings.ToLower(o.Title + " " + o.Description + " " + o.Agency)
	return strings.Contains(blob, strings.ToLower(lga))
}

// queryMatches splits the query on whitespace and requires each term to
// appear, case-insensitively, in the title or the description. Terms may
// match different fields.
func queryMatches(o models.Opportunity, query string) bool {
	title := strings.ToLower(o.Title)
	desc := strings.ToLower(o.Description)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(title, term) && !strings.Contains(desc, term) {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

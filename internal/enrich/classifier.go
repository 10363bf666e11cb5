package enrich

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/wyndham/grant-radar/internal/models"
)

// Classify infers missing fields on a record from its text and URL using
// the rule tables. Inference is additive and idempotent: supplied non-empty
// singular fields are never overwritten, tag sets only grow, and re-running
// over the same text adds nothing new. lga is the configured locality name
// used for local-government-area tagging.
func Classify(o *models.Opportunity, rules *Ruleset, lga string, now time.Time) {
	title := strings.TrimSpace(o.Title)
	desc := HTMLToText(o.Description)
	blob := strings.TrimSpace(title + " " + desc)

	host := ""
	if u, err := url.Parse(strings.TrimSpace(o.URL)); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	// Listing type: binary, grant is the fallback.
	if o.Type == "" {
		if (rules.tenderURLRe != nil && rules.tenderURLRe.MatchString(o.URL)) ||
			(rules.tenderTextRe != nil && rules.tenderTextRe.MatchString(blob)) {
			o.Type = "tender"
		} else {
			o.Type = "grant"
		}
	}

	// Jurisdiction: first matching host rule wins; no match leaves it unset.
	if o.Jurisdiction == "" && host != "" {
		for _, rule := range rules.Jurisdictions {
			if rule.Matches(host) {
				o.Jurisdiction = rule.Jurisdiction
				break
			}
		}
	}

	// Local-government-area tag.
	if o.LGA == "" && lga != "" {
		if hostInList(host, rules.CouncilHosts) || containsFold(blob, lga) {
			o.LGA = lga
		}
	}

	// Audience and discipline tags: every matching rule applies.
	o.Audience = applyTagRules(o.Audience, rules.Audience, blob)
	o.Discipline = applyTagRules(o.Discipline, rules.Discipline, blob)

	// Close date from free text, only when the source supplied none.
	if o.CloseDate == "" {
		if d := ExtractCloseDate(blob); d.Resolved {
			o.CloseDate = d.ISO()
		}
	}

	// Acquisition-time stamp.
	if o.LastSeen == "" {
		o.LastSeen = now.Format("2006-01-02")
	}

	if rules.ExtractAmounts && o.AmountMin == nil && o.AmountMax == nil {
		if min, max, ok := extractAmountRange(blob); ok {
			o.AmountMin = min
			o.AmountMax = max
		}
	}

	Normalize(o, now)
}

// ClassifyAll runs the enrichment pass over a whole catalog.
func ClassifyAll(items []models.Opportunity, rules *Ruleset, lga string, now time.Time) []models.Opportunity {
	for i := range items {
		Classify(&items[i], rules, lga, now)
	}
	return items
}

func applyTagRules(tags []string, rules []TagRule, blob string) []string {
	var inferred []string
	for _, rule := range rules {
		if rule.re != nil && rule.re.MatchString(blob) {
			inferred = append(inferred, rule.Tag)
		}
	}
	tags = mergeUniqueFold(tags, inferred)
	sort.Strings(tags)
	return tags
}

func hostInList(host string, council []string) bool {
	if host == "" {
		return false
	}
	for _, c := range council {
		if strings.Contains(host, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

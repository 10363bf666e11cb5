// Package digest assembles and delivers the weekly opportunities email:
// a "new this week" section and a "closing soon" section over the scoped
// catalog.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/filter"
	"github.com/wyndham/grant-radar/internal/models"
)

// Digest is one assembled weekly summary.
type Digest struct {
	Council       string
	SubjectPrefix string
	WindowDays    int
	Limit         int
	NewItems      []models.Opportunity
	ClosingSoon   []models.Opportunity
}

// Build applies the digest scope filter and derives both sections.
func Build(items []models.Opportunity, cfg *config.Config, now time.Time) Digest {
	scoped := scopeFilter(items, cfg)
	return Digest{
		Council:       cfg.Council,
		SubjectPrefix: cfg.DigestSubjectPrefix,
		WindowDays:    cfg.ClosingWindowDays,
		Limit:         cfg.DigestLimit,
		NewItems:      filter.NewThisWeek(scoped, now),
		ClosingSoon:   filter.ClosingSoon(scoped, cfg.ClosingWindowDays, now),
	}
}

// scopeFilter keeps records in the configured jurisdictions, plus records
// whose jurisdiction could not be inferred. With DigestLGAOnly set, only
// records mentioning the locality survive.
func scopeFilter(items []models.Opportunity, cfg *config.Config) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range items {
		keep := o.Jurisdiction == "" || inFold(cfg.Jurisdictions, o.Jurisdiction)
		if cfg.DigestLGAOnly {
			keep = filter.MentionsLocality(o, cfg.LGA)
		}
		if keep {
			out = append(out, o)
		}
	}
	return out
}

func inFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// Subject builds the email subject line for the given date.
func (d Digest) Subject(now time.Time) string {
	prefix := strings.TrimSpace(d.SubjectPrefix)
	if prefix != "" {
		prefix += " "
	}
	return fmt.Sprintf("%sGrants & Tenders Weekly Digest - %s", prefix, now.Format("2 Jan 2006"))
}

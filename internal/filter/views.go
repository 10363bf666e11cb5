package filter

import (
	"sort"
	"time"

	"github.com/wyndham/grant-radar/internal/models"
)

// RecentDays is the trailing window for the "new this week" view.
const RecentDays = 7

// NewThisWeek returns the records whose last-seen stamp falls within the
// inclusive trailing window [today-7, today], most recently seen first.
// Records with an absent or unparsable last_seen are excluded. The sort is
// stable, so ties keep their input order.
func NewThisWeek(items []models.Opportunity, now time.Time) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range items {
		if !o.LastSeenAt.Resolved {
			continue
		}
		age := -o.LastSeenAt.DaysUntil(now)
		if age >= 0 && age <= RecentDays {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastSeenAt.Time.After(out[j].LastSeenAt.Time)
	})
	return out
}

// ClosingSoon returns the records whose close date resolves and falls
// within the next windowDays days, soonest first. Already-closed records
// and records without a resolvable close date are excluded. Each returned
// record carries its recomputed days-to-close.
func ClosingSoon(items []models.Opportunity, windowDays int, now time.Time) []models.Opportunity {
	var out []models.Opportunity
	for _, o := range items {
		if !o.CloseAt.Resolved {
			continue
		}
		d := o.CloseAt.DaysUntil(now)
		if d < 0 || d > windowDays {
			continue
		}
		days := d
		o.DaysToClose = &days
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DaysToClose < *out[j].DaysToClose
	})
	return out
}

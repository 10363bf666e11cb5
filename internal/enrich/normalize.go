package enrich

import (
	"time"

	"github.com/wyndham/grant-radar/internal/models"
)

// Normalize guarantees the canonical attribute set on a record and
// recomputes the derived date fields against now. Present values are left
// exactly as supplied; only absent collections get defaults. Safe to call
// any number of times.
func Normalize(o *models.Opportunity, now time.Time) {
	if o.Audience == nil {
		o.Audience = []string{}
	}
	if o.Discipline == nil {
		o.Discipline = []string{}
	}

	o.OpenAt = ResolveDate(o.OpenDate)
	o.CloseAt = ResolveDate(o.CloseDate)
	o.LastSeenAt = ResolveStamp(o.LastSeen)

	if o.CloseAt.Resolved {
		d := o.CloseAt.DaysUntil(now)
		o.DaysToClose = &d
	} else {
		o.DaysToClose = nil
	}
}

// NormalizeAll normalizes a freshly loaded catalog in place and returns it.
func NormalizeAll(items []models.Opportunity, now time.Time) []models.Opportunity {
	for i := range items {
		Normalize(&items[i], now)
	}
	return items
}

package models

import (
	"encoding/json"
	"time"
)

// Opportunity is a single grant or tender listing. String and slice fields
// default to empty; pointer fields default to nil for "unknown". Date fields
// are stored as ISO-8601 strings; their parsed forms live in the derived
// fields and are recomputed on load, never trusted from input.
type Opportunity struct {
	ID           string   `json:"id,omitempty"`
	Source       string   `json:"source,omitempty"`
	Type         string   `json:"type,omitempty"` // "grant" | "tender" | ""
	URL          string   `json:"url,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Agency       string   `json:"agency,omitempty"`
	Jurisdiction string   `json:"jurisdiction,omitempty"` // "VIC", "Commonwealth", ...
	LGA          string   `json:"lga,omitempty"`
	Audience     []string `json:"audience"`
	Discipline   []string `json:"discipline"`
	OpenDate     string   `json:"open_date,omitempty"`  // YYYY-MM-DD
	CloseDate    string   `json:"close_date,omitempty"` // YYYY-MM-DD
	Status       string   `json:"status,omitempty"`
	AmountMin    *float64 `json:"amount_min,omitempty"`
	AmountMax    *float64 `json:"amount_max,omitempty"`
	LastSeen     string   `json:"last_seen,omitempty"` // date or date-time

	// Derived on load/normalization.
	OpenAt      Date `json:"-"`
	CloseAt     Date `json:"-"`
	LastSeenAt  Date `json:"-"`
	DaysToClose *int `json:"-"`

	// Extra preserves source keys this module does not recognize so a
	// load/enrich/save cycle never drops data.
	Extra map[string]json.RawMessage `json:"-"`
}

// Date is the result of resolving a heterogeneous date representation.
// Resolved=false is the explicit "unknown" outcome: distinguishable from any
// real date, and from a zero time that happened to parse.
type Date struct {
	Time     time.Time
	Resolved bool
}

// DateOf wraps a concrete calendar date.
func DateOf(t time.Time) Date {
	return Date{
		Time:     time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Resolved: true,
	}
}

// ISO renders the date as YYYY-MM-DD, or "" when unresolved.
func (d Date) ISO() string {
	if !d.Resolved {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// DaysUntil returns whole days from today until d. Negative means past.
func (d Date) DaysUntil(today time.Time) int {
	a := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// knownKeys are the attribute names owned by Opportunity. "days_to_close" is
// accepted on input (and discarded) so stale persisted values never shadow
// the recomputed one.
var knownKeys = map[string]struct{}{
	"id": {}, "source": {}, "type": {}, "url": {}, "title": {},
	"description": {}, "agency": {}, "jurisdiction": {}, "lga": {},
	"audience": {}, "discipline": {}, "open_date": {}, "close_date": {},
	"status": {}, "amount_min": {}, "amount_max": {}, "last_seen": {},
	"days_to_close": {},
}

type opportunityAlias Opportunity

func (o *Opportunity) UnmarshalJSON(data []byte) error {
	var alias opportunityAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, ok := knownKeys[k]; ok {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*o = Opportunity(alias)
	return nil
}

func (o Opportunity) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(opportunityAlias(o))
	if err != nil {
		return nil, err
	}

	if len(o.Extra) == 0 && o.DaysToClose == nil {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range o.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	if o.DaysToClose != nil {
		d, err := json.Marshal(*o.DaysToClose)
		if err != nil {
			return nil, err
		}
		merged["days_to_close"] = d
	}
	return json.Marshal(merged)
}

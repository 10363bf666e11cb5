package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUnmarshalKeepsUnknownKeys(t *testing.T) {
	in := `{
		"title": "Community Grants",
		"description": "Round 2",
		"audience": ["community"],
		"discipline": [],
		"contact_email": "grants@example.org",
		"internal_ref": 42
	}`

	var o Opportunity
	if err := json.Unmarshal([]byte(in), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.Title != "Community Grants" {
		t.Fatalf("title = %q", o.Title)
	}
	if len(o.Extra) != 2 {
		t.Fatalf("extra = %v, want 2 preserved keys", o.Extra)
	}
	if string(o.Extra["contact_email"]) != `"grants@example.org"` {
		t.Fatalf("contact_email = %s", o.Extra["contact_email"])
	}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"contact_email":"grants@example.org"`) {
		t.Fatalf("unknown key dropped on round trip: %s", out)
	}
	if !strings.Contains(string(out), `"internal_ref":42`) {
		t.Fatalf("unknown key dropped on round trip: %s", out)
	}
}

func TestUnmarshalDiscardsDaysToClose(t *testing.T) {
	in := `{"title": "x", "description": "", "close_date": "2026-03-20", "days_to_close": 999}`

	var o Opportunity
	if err := json.Unmarshal([]byte(in), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.DaysToClose != nil {
		t.Fatalf("days_to_close = %v, want nil until recomputed", *o.DaysToClose)
	}
	if _, ok := o.Extra["days_to_close"]; ok {
		t.Fatal("days_to_close leaked into extra keys")
	}
}

func TestMarshalEmitsRecomputedDaysToClose(t *testing.T) {
	days := 5
	o := Opportunity{Title: "x", CloseDate: "2026-03-15", DaysToClose: &days}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"days_to_close":5`) {
		t.Fatalf("recomputed days_to_close missing: %s", out)
	}
}

func TestMarshalOmitsEmptyOptionalFields(t *testing.T) {
	o := Opportunity{Title: "x", Audience: []string{}, Discipline: []string{}}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	for _, absent := range []string{"amount_min", "close_date", "lga", "days_to_close"} {
		if strings.Contains(s, absent) {
			t.Fatalf("empty field %q serialized: %s", absent, s)
		}
	}
	// The tag collections always serialize, even when empty.
	if !strings.Contains(s, `"audience":[]`) || !strings.Contains(s, `"discipline":[]`) {
		t.Fatalf("tag collections missing: %s", s)
	}
}

func TestRoundTripPreservesSuppliedValues(t *testing.T) {
	in := `{"title":"  Padded  ","description":"a\nb","audience":["community"],"discipline":[],"close_date":"2026-06-30","amount_max":5000}`

	var o Opportunity
	if err := json.Unmarshal([]byte(in), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var a, b map[string]interface{}
	if err := json.Unmarshal([]byte(in), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &b); err != nil {
		t.Fatal(err)
	}
	for k, v := range a {
		got, ok := b[k]
		if !ok {
			t.Fatalf("key %q dropped on round trip", k)
		}
		av, _ := json.Marshal(v)
		bv, _ := json.Marshal(got)
		if string(av) != string(bv) {
			t.Fatalf("key %q changed: %s -> %s", k, av, bv)
		}
	}
}

func TestDateISO(t *testing.T) {
	d := DateOf(time.Date(2026, 6, 30, 17, 45, 0, 0, time.UTC))
	if d.ISO() != "2026-06-30" {
		t.Fatalf("iso = %q", d.ISO())
	}
	if (Date{}).ISO() != "" {
		t.Fatalf("unresolved iso = %q, want empty", (Date{}).ISO())
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		d    Date
		want int
	}{
		{"future", DateOf(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)), 10},
		{"same day ignores clock time", DateOf(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)), 0},
		{"past", DateOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)), -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.DaysUntil(today); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

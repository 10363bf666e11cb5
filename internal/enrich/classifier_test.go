package enrich

import (
	"reflect"
	"testing"
	"time"

	"github.com/wyndham/grant-radar/internal/models"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func classifyOne(t *testing.T, o models.Opportunity) models.Opportunity {
	t.Helper()
	rules := DefaultRules()
	Classify(&o, rules, "Wyndham", testNow)
	return o
}

func TestClassifyJurisdiction(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"vic business portal", "https://business.vic.gov.au/x", "VIC"},
		{"grantconnect", "https://www.grants.gov.au/go/list", "Commonwealth"},
		{"business.gov.au", "https://business.gov.au/grants-and-programs", "Commonwealth"},
		{"austender", "https://www.tenders.gov.au/austender/atm", "Commonwealth"},
		{"council site", "https://www.wyndham.vic.gov.au/grants", "VIC"},
		{"unknown host", "https://example.org/grants", ""},
		{"no url", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOne(t, models.Opportunity{URL: tt.url})
			if got.Jurisdiction != tt.want {
				t.Fatalf("jurisdiction = %q, want %q", got.Jurisdiction, tt.want)
			}
		})
	}
}

func TestClassifyJurisdictionNeverOverwrites(t *testing.T) {
	got := classifyOne(t, models.Opportunity{
		URL:          "https://www.grants.gov.au/go/list",
		Jurisdiction: "NSW",
	})
	if got.Jurisdiction != "NSW" {
		t.Fatalf("supplied jurisdiction overwritten: %q", got.Jurisdiction)
	}
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		title string
		want  string
	}{
		{"rft in url", "https://www.tenders.vic.gov.au/rft-12345", "", "tender"},
		{"tender word in text", "https://example.org/x", "Open tender for road works", "tender"},
		{"plain grant", "https://example.org/x", "Community Grants Round 2", "grant"},
		{"no signals", "", "", "grant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOne(t, models.Opportunity{URL: tt.url, Title: tt.title})
			if got.Type != tt.want {
				t.Fatalf("type = %q, want %q", got.Type, tt.want)
			}
		})
	}
}

func TestClassifyLGA(t *testing.T) {
	tests := []struct {
		name string
		o    models.Opportunity
		want string
	}{
		{"council host", models.Opportunity{URL: "https://www.wyndham.vic.gov.au/grants"}, "Wyndham"},
		{"locality mention", models.Opportunity{Title: "Support for Wyndham sports clubs"}, "Wyndham"},
		{"case insensitive mention", models.Opportunity{Description: "Open to WYNDHAM residents"}, "Wyndham"},
		{"no mention", models.Opportunity{Title: "Statewide arts funding"}, ""},
		{"supplied value kept", models.Opportunity{LGA: "Melton", Title: "Wyndham program"}, "Melton"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyOne(t, tt.o)
			if got.LGA != tt.want {
				t.Fatalf("lga = %q, want %q", got.LGA, tt.want)
			}
		})
	}
}

func TestClassifyTags(t *testing.T) {
	got := classifyOne(t, models.Opportunity{
		Title:       "Community Health Research Fellowship",
		Description: "Funding for hospital-based research partnerships.",
	})

	wantAudience := []string{"community", "research"}
	if !reflect.DeepEqual(got.Audience, wantAudience) {
		t.Fatalf("audience = %v, want %v", got.Audience, wantAudience)
	}
	wantDiscipline := []string{"health"}
	if !reflect.DeepEqual(got.Discipline, wantDiscipline) {
		t.Fatalf("discipline = %v, want %v", got.Discipline, wantDiscipline)
	}
}

func TestClassifyTagsUnionWithExisting(t *testing.T) {
	got := classifyOne(t, models.Opportunity{
		Title:    "Small business accelerator",
		Audience: []string{"youth"},
	})

	want := []string{"business", "youth"}
	if !reflect.DeepEqual(got.Audience, want) {
		t.Fatalf("audience = %v, want %v", got.Audience, want)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	o := models.Opportunity{
		Title:       "Wyndham Community Sports Grants",
		Description: "Grants for local clubs. Applications close 30 June 2026.",
		URL:         "https://www.wyndham.vic.gov.au/grants/sport",
	}
	rules := DefaultRules()

	once := o
	Classify(&once, rules, "Wyndham", testNow)
	twice := once
	Classify(&twice, rules, "Wyndham", testNow)

	if !reflect.DeepEqual(once.Audience, twice.Audience) {
		t.Fatalf("audience changed on re-run: %v vs %v", once.Audience, twice.Audience)
	}
	if !reflect.DeepEqual(once.Discipline, twice.Discipline) {
		t.Fatalf("discipline changed on re-run: %v vs %v", once.Discipline, twice.Discipline)
	}
	if once.Type != twice.Type || once.Jurisdiction != twice.Jurisdiction ||
		once.LGA != twice.LGA || once.CloseDate != twice.CloseDate {
		t.Fatal("singular fields changed on re-run")
	}
}

func TestClassifyCloseDateBackfill(t *testing.T) {
	got := classifyOne(t, models.Opportunity{
		Title:       "Arts Recovery Fund",
		Description: "Applications close 30 June 2026.",
	})
	if got.CloseDate != "2026-06-30" {
		t.Fatalf("close_date = %q, want 2026-06-30", got.CloseDate)
	}
	if got.DaysToClose == nil {
		t.Fatal("days_to_close not derived")
	}

	kept := classifyOne(t, models.Opportunity{
		CloseDate:   "2026-05-01",
		Description: "Applications close 30 June 2026.",
	})
	if kept.CloseDate != "2026-05-01" {
		t.Fatalf("supplied close_date overwritten: %q", kept.CloseDate)
	}
}

func TestClassifyCloseDateUnresolvableIsSilent(t *testing.T) {
	got := classifyOne(t, models.Opportunity{Description: "closes whenever funds run out"})
	if got.CloseDate != "" {
		t.Fatalf("close_date = %q, want empty", got.CloseDate)
	}
	if got.DaysToClose != nil {
		t.Fatal("days_to_close should be nil for unresolved close date")
	}
}

func TestClassifyLastSeenStamp(t *testing.T) {
	got := classifyOne(t, models.Opportunity{})
	if got.LastSeen != "2026-03-10" {
		t.Fatalf("last_seen = %q, want 2026-03-10", got.LastSeen)
	}

	kept := classifyOne(t, models.Opportunity{LastSeen: "2026-01-01"})
	if kept.LastSeen != "2026-01-01" {
		t.Fatalf("supplied last_seen overwritten: %q", kept.LastSeen)
	}
}

func TestClassifyEmptyTextYieldsNoTags(t *testing.T) {
	got := classifyOne(t, models.Opportunity{})
	if len(got.Audience) != 0 || len(got.Discipline) != 0 {
		t.Fatalf("expected no tags, got audience=%v discipline=%v", got.Audience, got.Discipline)
	}
}

func TestClassifyHTMLDescription(t *testing.T) {
	got := classifyOne(t, models.Opportunity{
		Description: "<p>Support for <b>community</b> sport clubs.</p>",
	})
	if !hasTag(got.Audience, "community") {
		t.Fatalf("audience = %v, want community inferred from HTML text", got.Audience)
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wyndham/grant-radar/internal/models"
)

func exportItems() []models.Opportunity {
	max := 5000.0
	min := 1000.0
	days := 4
	return []models.Opportunity{
		{
			Title: "Community Sports Grants", Type: "grant",
			Jurisdiction: "VIC", Audience: []string{"community"},
			Discipline: []string{"sport"}, CloseDate: "2026-03-14",
			AmountMin: &min, AmountMax: &max,
			Agency: "Wyndham City Council", URL: "https://example.org/sports",
			DaysToClose: &days,
		},
		{Title: "Road Works Tender", Type: "tender", Jurisdiction: "VIC"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, exportItems()); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "title" || rows[0][9] != "url" {
		t.Fatalf("header = %v", rows[0])
	}
	got := rows[1]
	if got[0] != "Community Sports Grants" || got[3] != "community" || got[6] != "1000" || got[7] != "5000" {
		t.Fatalf("row = %v", got)
	}
	if rows[2][6] != "" {
		t.Fatalf("missing amount should export empty, got %q", rows[2][6])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf strings.Builder
	if err := WriteJSON(&buf, exportItems()); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded []models.Opportunity
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Title != "Community Sports Grants" {
		t.Fatalf("decoded = %+v", decoded)
	}

	var empty strings.Builder
	if err := WriteJSON(&empty, nil); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if strings.TrimSpace(empty.String()) != "[]" {
		t.Fatalf("empty export = %q, want []", empty.String())
	}
}

func TestRenderTable(t *testing.T) {
	var buf strings.Builder
	RenderTable(&buf, exportItems())

	out := buf.String()
	for _, want := range []string{"Community Sports Grants", "grant", "2026-03-14", "4", "Wyndham City Council"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

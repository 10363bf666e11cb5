// Package export writes filtered views as CSV or JSON artifacts and
// renders them as terminal tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wyndham/grant-radar/internal/models"
)

// displayCols is the column set exports and tables share.
var displayCols = []string{
	"title", "type", "jurisdiction", "audience", "discipline",
	"close_date", "amount_min", "amount_max", "agency", "url",
}

// WriteCSV writes the display columns for every record.
func WriteCSV(w io.Writer, items []models.Opportunity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(displayCols); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := range items {
		if err := cw.Write(row(items[i])); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full records, indented, including pass-through keys.
func WriteJSON(w io.Writer, items []models.Opportunity) error {
	if items == nil {
		items = []models.Opportunity{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("writing json export: %w", err)
	}
	return nil
}

// RenderTable prints the records as a terminal table.
func RenderTable(w io.Writer, items []models.Opportunity) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Title", "Type", "Jurisdiction", "Closes", "Days", "Amount", "Agency"})

	for _, o := range items {
		days := ""
		if o.DaysToClose != nil {
			days = strconv.Itoa(*o.DaysToClose)
		}
		t.AppendRow(table.Row{
			truncate(o.Title, 48), o.Type, o.Jurisdiction,
			o.CloseDate, days, amountRange(o), truncate(o.Agency, 24),
		})
	}
	t.Render()
}

func row(o models.Opportunity) []string {
	return []string{
		o.Title, o.Type, o.Jurisdiction,
		strings.Join(o.Audience, ", "), strings.Join(o.Discipline, ", "),
		o.CloseDate, amount(o.AmountMin), amount(o.AmountMax),
		o.Agency, o.URL,
	}
}

func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func amountRange(o models.Opportunity) string {
	min, max := amount(o.AmountMin), amount(o.AmountMax)
	switch {
	case min == "" && max == "":
		return ""
	case min == "":
		return "up to $" + max
	case max == "":
		return "from $" + min
	default:
		return "$" + min + "–$" + max
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen > 3 {
		return s[:maxLen-3] + "..."
	}
	return s[:maxLen]
}

package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/enrich"
	"github.com/wyndham/grant-radar/internal/export"
	"github.com/wyndham/grant-radar/internal/filter"
	"github.com/wyndham/grant-radar/internal/store"
)

func main() {
	dataPath := flag.String("data", "", "path to grants.json/jsonl (probed when empty)")
	outPath := flag.String("out", "", "output file (stdout table only when empty)")
	format := flag.String("format", "csv", "output format: csv or json")
	view := flag.String("view", "all", "view: all, new, or closing")
	days := flag.Int("days", 0, "closing window override")

	types := flag.String("types", "", "type filter (CSV)")
	juris := flag.String("jurisdictions", "", "jurisdiction filter (CSV)")
	audiences := flag.String("audiences", "", "audience filter (CSV)")
	disciplines := flag.String("disciplines", "", "discipline filter (CSV)")
	minAmount := flag.Float64("min-amount", -1, "minimum amount")
	maxAmount := flag.Float64("max-amount", -1, "maximum amount")
	query := flag.String("q", "", "free-text query")
	localOnly := flag.Bool("local-only", false, "only records mentioning the configured locality")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("RADAR_CONFIG"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	path, err := store.FindDataFile(*dataPath)
	if err != nil {
		log.Fatalf("data not found: %v", err)
	}
	items, err := store.Load(path)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}

	now := time.Now()
	items = enrich.NormalizeAll(items, now)

	crit := filter.Criteria{
		Types:         splitCSV(*types),
		Jurisdictions: splitCSV(*juris),
		Audiences:     splitCSV(*audiences),
		Disciplines:   splitCSV(*disciplines),
		Query:         *query,
		LocalityOnly:  *localOnly,
	}
	if *minAmount >= 0 {
		crit.AmountMin = minAmount
	}
	if *maxAmount >= 0 {
		crit.AmountMax = maxAmount
	}
	items = filter.Apply(items, crit, cfg.LGA)

	switch *view {
	case "new":
		items = filter.NewThisWeek(items, now)
	case "closing":
		window := cfg.ClosingWindowDays
		if *days > 0 {
			window = *days
		}
		items = filter.ClosingSoon(items, window, now)
	case "all":
	default:
		log.Fatalf("unknown view %q", *view)
	}

	export.RenderTable(os.Stdout, items)

	if *outPath == "" {
		return
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create failed: %v", err)
	}
	defer f.Close()

	switch *format {
	case "csv":
		err = export.WriteCSV(f, items)
	case "json":
		err = export.WriteJSON(f, items)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("Wrote %d records to %s", len(items), *outPath)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

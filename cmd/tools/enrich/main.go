package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/enrich"
	"github.com/wyndham/grant-radar/internal/models"
	"github.com/wyndham/grant-radar/internal/store"
)

type summary struct {
	Records         int    `json:"records"`
	TypesInferred   int    `json:"types_inferred"`
	Jurisdictions   int    `json:"jurisdictions_inferred"`
	CloseDatesAdded int    `json:"close_dates_added"`
	LGATagged       int    `json:"lga_tagged"`
	Output          string `json:"output"`
}

func main() {
	inPath := flag.String("in", "", "input grants.json or .jsonl (probed when empty)")
	outPath := flag.String("out", "", "output path (defaults to overwrite input)")
	lga := flag.String("lga", "", "locality name to tag (defaults to config)")
	rulesPath := flag.String("rules", "", "rule table YAML (embedded defaults when empty)")
	useDB := flag.Bool("db", false, "enrich the Postgres catalog instead of a file")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("RADAR_CONFIG"))
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *lga == "" {
		*lga = cfg.LGA
	}
	rules, err := enrich.LoadRules(*rulesPath)
	if err != nil {
		log.Fatalf("rules load failed: %v", err)
	}

	ctx := context.Background()
	var catalog store.Catalog
	output := ""
	if *useDB {
		pool, err := store.Connect(ctx)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()
		if err := store.ApplyMigrations(ctx, pool); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
		catalog = store.NewDBCatalog(pool)
		output = "postgres"
	} else {
		path, err := store.FindDataFile(*inPath)
		if err != nil {
			log.Fatalf("input not found: %v", err)
		}
		output = path
		if *outPath != "" {
			output = *outPath
		}
		catalog = &store.FileCatalog{Path: path}
	}

	items, err := catalog.All(ctx)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}

	now := time.Now()
	items = enrich.NormalizeAll(items, now)
	sum := summary{Records: len(items), Output: output}
	for i := range items {
		before := items[i]
		enrich.Classify(&items[i], rules, *lga, now)
		countChanges(&sum, before, items[i])
	}

	if *useDB {
		err = catalog.ReplaceAll(ctx, items)
	} else {
		err = store.Save(output, items)
	}
	if err != nil {
		log.Fatalf("save failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		log.Fatal(err)
	}
}

func countChanges(sum *summary, before, after models.Opportunity) {
	if before.Type == "" && after.Type != "" {
		sum.TypesInferred++
	}
	if before.Jurisdiction == "" && after.Jurisdiction != "" {
		sum.Jurisdictions++
	}
	if before.CloseDate == "" && after.CloseDate != "" {
		sum.CloseDatesAdded++
	}
	if before.LGA == "" && after.LGA != "" {
		sum.LGATagged++
	}
}

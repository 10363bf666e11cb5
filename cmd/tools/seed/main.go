package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wyndham/grant-radar/internal/models"
	"github.com/wyndham/grant-radar/internal/store"
)

// seeds are the starter listings for a fresh catalog: the landing pages a
// council officer would watch by hand.
var seeds = []struct {
	Title    string
	URL      string
	Audience []string
}{
	{"Wyndham Community Grants", "https://www.wyndham.vic.gov.au/services/grants", []string{"community"}},
	{"Business Victoria - Grants and Programs", "https://business.vic.gov.au/grants-and-programs", []string{"business"}},
	{"GrantConnect - Current Grant Opportunities", "https://www.grants.gov.au/go/list", []string{"business"}},
	{"Business.gov.au - Grants and Programs", "https://business.gov.au/grants-and-programs", []string{"business"}},
}

func main() {
	dataPath := flag.String("data", "grants.json", "catalog file to seed")
	lga := flag.String("lga", "Wyndham", "locality tag for council-hosted listings")
	flag.Parse()

	var items []models.Opportunity
	if _, err := os.Stat(*dataPath); err == nil {
		items, err = store.Load(*dataPath)
		if err != nil {
			log.Fatalf("load failed: %v", err)
		}
	}

	byURL := make(map[string]bool, len(items))
	for _, o := range items {
		byURL[o.URL] = true
	}

	today := time.Now().Format("2006-01-02")
	added := 0
	for _, s := range seeds {
		if byURL[s.URL] {
			continue
		}
		o := models.Opportunity{
			ID:         uuid.NewString(),
			Source:     "seed",
			Type:       "grant",
			URL:        s.URL,
			Title:      s.Title,
			Audience:   s.Audience,
			Discipline: []string{},
			Status:     "open",
			LastSeen:   today,
		}
		if jur := seedJurisdiction(s.URL); jur != "" {
			o.Jurisdiction = jur
		}
		if strings.Contains(s.URL, "wyndham.vic.gov.au") {
			o.LGA = *lga
		}
		items = append(items, o)
		added++
	}

	if err := store.Save(*dataPath, items); err != nil {
		log.Fatalf("save failed: %v", err)
	}
	log.Printf("Added %d seed records. Total now %d.", added, len(items))
}

func seedJurisdiction(url string) string {
	switch {
	case strings.Contains(url, ".vic.gov.au"):
		return "VIC"
	case strings.Contains(url, "grants.gov.au"), strings.Contains(url, "business.gov.au"):
		return "Commonwealth"
	}
	return ""
}

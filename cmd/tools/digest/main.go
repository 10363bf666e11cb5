package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/digest"
	"github.com/wyndham/grant-radar/internal/enrich"
	"github.com/wyndham/grant-radar/internal/export"
	"github.com/wyndham/grant-radar/internal/store"
)

func main() {
	send := flag.Bool("send", false, "actually send the email via SMTP")
	dataPath := flag.String("data", "", "path to grants.json/jsonl (probed when empty)")
	showHTML := flag.Bool("html", false, "print the HTML body instead of tables")
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
	d := digest.Build(items, cfg, now)

	if *send {
		html, err := d.HTML()
		if err != nil {
			log.Fatalf("render failed: %v", err)
		}
		if err := digest.Send(html, d.Subject(now), cfg); err != nil {
			log.Fatalf("send failed: %v", err)
		}
		log.Printf("Digest sent to %d recipients.", len(cfg.DigestTo))
		return
	}

	if *showHTML {
		html, err := d.HTML()
		if err != nil {
			log.Fatalf("render failed: %v", err)
		}
		fmt.Println(html)
		return
	}

	fmt.Printf("%s\n\n", d.Subject(now))
	fmt.Printf("New this week (%d):\n", len(d.NewItems))
	export.RenderTable(os.Stdout, d.NewItems)
	fmt.Printf("\nClosing soon, within %d days (%d):\n", d.WindowDays, len(d.ClosingSoon))
	export.RenderTable(os.Stdout, d.ClosingSoon)
}

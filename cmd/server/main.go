package main

import (
	"context"
	"log"
	"os"

	"github.com/wyndham/grant-radar/internal/api"
	"github.com/wyndham/grant-radar/internal/auth"
	"github.com/wyndham/grant-radar/internal/config"
	"github.com/wyndham/grant-radar/internal/enrich"
	"github.com/wyndham/grant-radar/internal/store"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	cfg, err := config.Load(os.Getenv("RADAR_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	rules, err := enrich.LoadRules(os.Getenv("RADAR_RULES"))
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	authService, err := auth.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("Failed to init auth: %v", err)
	}

	ctx := context.Background()
	var catalog store.Catalog
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.Connect(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		if err := store.ApplyMigrations(ctx, pool); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		catalog = store.NewDBCatalog(pool)
	} else {
		path, err := store.FindDataFile(os.Getenv("RADAR_DATA"))
		if err != nil {
			log.Fatalf("Failed to locate catalog: %v", err)
		}
		log.Printf("Serving file catalog %s", path)
		catalog = &store.FileCatalog{Path: path}
	}

	srv := api.NewServer(catalog, cfg, rules, authService)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}

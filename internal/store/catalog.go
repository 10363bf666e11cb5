// Package store persists the opportunity catalog. Two backends exist: a
// flat JSON/JSONL file matching the exchange format produced by the
// acquisition scrapers, and a Postgres table for deployments that want the
// API server and cron tools sharing one catalog.
package store

import (
	"context"

	"github.com/wyndham/grant-radar/internal/models"
)

// Catalog is the persistence surface the pipeline consumes: whole-catalog
// reads at the start of a pass and whole-catalog writes at the end of one.
// Concurrent writers must be serialized by the caller.
type Catalog interface {
	All(ctx context.Context) ([]models.Opportunity, error)
	ReplaceAll(ctx context.Context, items []models.Opportunity) error
}

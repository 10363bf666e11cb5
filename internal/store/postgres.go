package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wyndham/grant-radar/internal/models"
)

// DBCatalog is the Postgres-backed catalog. Date fields are stored as the
// canonical ISO strings the exchange format uses; resolution is recomputed
// on load like everywhere else.
type DBCatalog struct {
	pool *pgxpool.Pool
}

func NewDBCatalog(pool *pgxpool.Pool) *DBCatalog {
	return &DBCatalog{pool: pool}
}

const selectCols = `id, source, type, url, title, description, agency,
	jurisdiction, lga, audience, discipline, open_date, close_date,
	status, amount_min, amount_max, last_seen, extra`

func (s *DBCatalog) All(ctx context.Context) ([]models.Opportunity, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+selectCols+" FROM opportunities ORDER BY last_seen DESC, id")
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}
	defer rows.Close()

	var items []models.Opportunity
	for rows.Next() {
		var o models.Opportunity
		var extraRaw []byte
		err := rows.Scan(
			&o.ID, &o.Source, &o.Type, &o.URL, &o.Title, &o.Description, &o.Agency,
			&o.Jurisdiction, &o.LGA, &o.Audience, &o.Discipline, &o.OpenDate, &o.CloseDate,
			&o.Status, &o.AmountMin, &o.AmountMax, &o.LastSeen, &extraRaw,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning opportunity: %w", err)
		}
		if len(extraRaw) > 0 && string(extraRaw) != "{}" {
			if err := json.Unmarshal(extraRaw, &o.Extra); err != nil {
				return nil, fmt.Errorf("decoding extra for %s: %w", o.ID, err)
			}
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}
	return items, nil
}

// Upsert writes one record by id, assigning a fresh id when the source
// supplied none.
func (s *DBCatalog) Upsert(ctx context.Context, o models.Opportunity) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	extra := []byte("{}")
	if len(o.Extra) > 0 {
		var err error
		if extra, err = json.Marshal(o.Extra); err != nil {
			return fmt.Errorf("encoding extra for %s: %w", o.ID, err)
		}
	}
	audience := o.Audience
	if audience == nil {
		audience = []string{}
	}
	discipline := o.Discipline
	if discipline == nil {
		discipline = []string{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO opportunities (
			id, source, type, url, title, description, agency,
			jurisdiction, lga, audience, discipline, open_date, close_date,
			status, amount_min, amount_max, last_seen, extra, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,NOW())
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			type = EXCLUDED.type,
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			agency = EXCLUDED.agency,
			jurisdiction = EXCLUDED.jurisdiction,
			lga = EXCLUDED.lga,
			audience = EXCLUDED.audience,
			discipline = EXCLUDED.discipline,
			open_date = EXCLUDED.open_date,
			close_date = EXCLUDED.close_date,
			status = EXCLUDED.status,
			amount_min = EXCLUDED.amount_min,
			amount_max = EXCLUDED.amount_max,
			last_seen = EXCLUDED.last_seen,
			extra = EXCLUDED.extra,
			updated_at = NOW()
	`, o.ID, o.Source, o.Type, o.URL, o.Title, o.Description, o.Agency,
		o.Jurisdiction, o.LGA, audience, discipline, o.OpenDate, o.CloseDate,
		o.Status, o.AmountMin, o.AmountMax, o.LastSeen, extra)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", o.ID, err)
	}
	return nil
}

// ReplaceAll upserts every record. The catalog never deletes: records that
// disappeared upstream keep their last known state.
func (s *DBCatalog) ReplaceAll(ctx context.Context, items []models.Opportunity) error {
	for i := range items {
		if err := s.Upsert(ctx, items[i]); err != nil {
			return err
		}
	}
	return nil
}

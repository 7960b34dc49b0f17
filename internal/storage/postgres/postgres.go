package postgres

import (
	"context"
	"fmt"

	"github.com/FranksOps/leadscout/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ensure postgresBackend implements storage.Backend
var _ storage.Backend = (*postgresBackend)(nil)

type postgresBackend struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	client TEXT NOT NULL,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	query TEXT NOT NULL,
	source_url TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS leads_client_created ON leads (client, created_at);
`

// New creates a new Postgres-backed storage.Backend.
func New(ctx context.Context, dsn string) (storage.Backend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, schema)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}

	return &postgresBackend{pool: pool}, nil
}

func (b *postgresBackend) Save(ctx context.Context, rec *storage.LeadRecord) error {
	query := `
	INSERT INTO leads (
		id, client, title, url, query, source_url, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := b.pool.Exec(ctx, query,
		rec.ID,
		rec.Client,
		rec.Title,
		rec.URL,
		rec.Query,
		rec.SourceURL,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead %s: %w", rec.ID, err)
	}

	return nil
}

func (b *postgresBackend) Query(ctx context.Context, filter storage.Filter) ([]*storage.LeadRecord, error) {
	query := `SELECT id, client, title, url, query, source_url, created_at FROM leads WHERE 1=1`
	args := []any{}
	paramCount := 1

	if filter.Client != "" {
		query += fmt.Sprintf(` AND client = $%d`, paramCount)
		args = append(args, filter.Client)
		paramCount++
	}
	if filter.URL != "" {
		query += fmt.Sprintf(` AND url = $%d`, paramCount)
		args = append(args, filter.URL)
		paramCount++
	}
	if filter.Since != nil {
		query += fmt.Sprintf(` AND created_at >= $%d`, paramCount)
		args = append(args, *filter.Since)
		paramCount++
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, paramCount)
		args = append(args, filter.Limit)
		paramCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, paramCount)
		args = append(args, filter.Offset)
	}

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var results []*storage.LeadRecord
	for rows.Next() {
		var r storage.LeadRecord
		err := rows.Scan(&r.ID, &r.Client, &r.Title, &r.URL, &r.Query, &r.SourceURL, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return results, nil
}

func (b *postgresBackend) Close() error {
	b.pool.Close()
	return nil
}

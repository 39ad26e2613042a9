package storage

import (
	"context"
	"database/sql"
	"log/slog"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// SaveRun inserts the run record and its broken links in one transaction and
// returns the new run id.
func (s *PostgresStorage) SaveRun(ctx context.Context, run Run, broken []BrokenLink) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO check_runs (started_at, finished_at, documents, documents_skipped, links_found, checks_performed, cache_hits, broken)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		run.StartedAt, run.FinishedAt, run.Documents, run.DocumentsSkipped, run.LinksFound, run.ChecksPerformed, run.CacheHits, run.Broken,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, b := range broken {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO broken_links (run_id, document, url, label, status_code)
			VALUES ($1, $2, $3, $4, $5)`,
			id, b.Document, b.URL, b.Label, b.Code,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.Info("saved run", "id", id, "broken", len(broken))
	return id, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

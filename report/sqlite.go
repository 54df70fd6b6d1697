package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS tfidf (
	run_id TEXT NOT NULL,
	title  TEXT NOT NULL,
	rank   INTEGER NOT NULL,
	ngram  TEXT NOT NULL,
	score  REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS sentiment (
	run_id      TEXT NOT NULL,
	title       TEXT NOT NULL,
	document_id INTEGER NOT NULL,
	text        TEXT NOT NULL,
	positive    INTEGER NOT NULL,
	negative    INTEGER NOT NULL,
	label       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS aspects (
	run_id     TEXT NOT NULL,
	title      TEXT NOT NULL,
	aspect     TEXT NOT NULL,
	triggered  INTEGER NOT NULL,
	positive   INTEGER NOT NULL,
	negative   INTEGER NOT NULL,
	net_score  REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS frequency (
	run_id TEXT NOT NULL,
	title  TEXT NOT NULL,
	term   TEXT NOT NULL,
	count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pairs (
	run_id TEXT NOT NULL,
	title  TEXT NOT NULL,
	first  TEXT NOT NULL,
	second TEXT NOT NULL,
	count  INTEGER NOT NULL
);`

// SQLiteSink appends bundles to a SQLite database, one run per bundle.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error { return s.db.Close() }

// Save stores every table of b under b.RunID in one transaction.
func (s *SQLiteSink) Save(ctx context.Context, b *Bundle) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO runs (run_id, created_at) VALUES (?, ?)`, b.RunID, b.CreatedAt); err != nil {
		return fmt.Errorf("error saving run: %w", err)
	}
	for _, t := range b.Terms {
		if _, err = tx.ExecContext(ctx, `INSERT INTO tfidf VALUES (?, ?, ?, ?, ?)`,
			b.RunID, t.Title, t.Rank, t.Term, t.Score); err != nil {
			return fmt.Errorf("error saving tfidf: %w", err)
		}
	}
	for _, r := range b.Sentiments {
		if _, err = tx.ExecContext(ctx, `INSERT INTO sentiment VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.RunID, r.Title, r.DocumentID, r.Text, r.Positive, r.Negative, r.Label); err != nil {
			return fmt.Errorf("error saving sentiment: %w", err)
		}
	}
	for _, a := range b.Aspects {
		if _, err = tx.ExecContext(ctx, `INSERT INTO aspects VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.RunID, a.Title, a.Aspect, a.TriggeredDocuments, a.PositiveMatches, a.NegativeMatches, a.NetScore); err != nil {
			return fmt.Errorf("error saving aspects: %w", err)
		}
	}
	for _, f := range b.Frequencies {
		if _, err = tx.ExecContext(ctx, `INSERT INTO frequency VALUES (?, ?, ?, ?)`,
			b.RunID, f.Title, f.Term, f.Count); err != nil {
			return fmt.Errorf("error saving frequency: %w", err)
		}
	}
	for _, p := range b.Pairs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO pairs VALUES (?, ?, ?, ?, ?)`,
			b.RunID, p.Title, p.First, p.Second, p.Count); err != nil {
			return fmt.Errorf("error saving pairs: %w", err)
		}
	}
	return tx.Commit()
}

// AspectScores returns the stored net scores of a run keyed by title then
// aspect.
func (s *SQLiteSink) AspectScores(ctx context.Context, runID string) (map[string]map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, aspect, net_score FROM aspects WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]map[string]float64)
	for rows.Next() {
		var title, aspect string
		var score float64
		if err := rows.Scan(&title, &aspect, &score); err != nil {
			return nil, err
		}
		if out[title] == nil {
			out[title] = make(map[string]float64)
		}
		out[title][aspect] = score
	}
	return out, rows.Err()
}

// Runs returns the stored run ids, oldest first.
func (s *SQLiteSink) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Package journal keeps a SQLite log of settled character fetches.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/disneydash/internal/characters"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// MemoryPath keeps the journal for the lifetime of the process only.
const MemoryPath = ":memory:"

// Entry is one settled fetch.
type Entry struct {
	ID        int64
	RequestID string
	Page      int
	PageSize  int
	Name      string
	TVShows   string
	Outcome   string
	Error     string
	Records   int
	Duration  time.Duration
	StartedAt time.Time
	SettledAt time.Time
}

// Summary aggregates the journal.
type Summary struct {
	Total       int
	Failures    int
	AvgDuration time.Duration
	LastSettled time.Time
}

// Journal wraps SQLite access for fetch entries.
type Journal struct {
	db *sql.DB
}

// IsMemory reports whether path keeps the journal in memory.
func IsMemory(path string) bool {
	path = strings.TrimSpace(path)
	return path == "" || path == MemoryPath || strings.HasPrefix(path, "file::memory:")
}

// Open opens or creates the journal and applies migrations. An empty
// path or MemoryPath keeps it in memory.
func Open(path string) (*Journal, error) {
	if IsMemory(path) {
		path = MemoryPath
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id INTEGER PRIMARY KEY,
			request_id TEXT NOT NULL,
			page INTEGER NOT NULL,
			page_size INTEGER NOT NULL,
			name TEXT NOT NULL,
			tv_shows TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT NOT NULL,
			records INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			settled_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_settled_at ON fetches(settled_at);`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// FromResult builds the entry for a settled fetch.
func FromResult(r characters.Result, settledAt time.Time) Entry {
	return Entry{
		RequestID: r.RequestID,
		Page:      r.Params.Page,
		PageSize:  r.Params.PageSize,
		Name:      r.Params.Name,
		TVShows:   r.Params.TVShows,
		Outcome:   r.Outcome.String(),
		Error:     r.Err,
		Records:   len(r.Data),
		Duration:  r.Duration,
		StartedAt: r.StartedAt,
		SettledAt: settledAt,
	}
}

// Record stores e and returns its id.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO fetches (request_id, page, page_size, name, tv_shows, outcome, error, records, duration_ms, started_at, settled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID,
		e.Page,
		e.PageSize,
		e.Name,
		e.TVShows,
		e.Outcome,
		e.Error,
		e.Records,
		e.Duration.Milliseconds(),
		e.StartedAt.UTC().Format(timeLayout),
		e.SettledAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, request_id, page, page_size, name, tv_shows, outcome, error, records, duration_ms, started_at, settled_at
		FROM fetches
		ORDER BY settled_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMs int64
		var startedAt, settledAt string
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Page, &e.PageSize, &e.Name, &e.TVShows, &e.Outcome, &e.Error, &e.Records, &durationMs, &startedAt, &settledAt); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		if e.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if e.SettledAt, err = time.Parse(timeLayout, settledAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Summary aggregates every entry in the journal.
func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var avgMs sql.NullFloat64
	var last sql.NullString
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			AVG(duration_ms),
			MAX(settled_at)
		FROM fetches`, characters.OutcomeFailed.String()).Scan(&sum.Total, &sum.Failures, &avgMs, &last)
	if err != nil {
		return Summary{}, err
	}
	if avgMs.Valid {
		sum.AvgDuration = time.Duration(avgMs.Float64 * float64(time.Millisecond))
	}
	if last.Valid {
		parsed, err := time.Parse(timeLayout, last.String)
		if err != nil {
			return Summary{}, err
		}
		sum.LastSettled = parsed
	}
	return sum, nil
}

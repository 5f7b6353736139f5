// Package history persists submission records to a relational database.
// It implements the engine's Recorder interface on top of database/sql,
// supporting SQLite for single-node deployments and PostgreSQL for shared
// ones.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/nvalette/marketd/internal/core/tx"
	_ "modernc.org/sqlite" // SQLite driver
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	hash         TEXT PRIMARY KEY,
	tx_type      TEXT NOT NULL,
	account      TEXT NOT NULL,
	sequence     INTEGER NOT NULL,
	result       TEXT NOT NULL,
	applied      BOOLEAN NOT NULL,
	raw          BLOB,
	submitted_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_account ON submissions (account, sequence);
CREATE INDEX IF NOT EXISTS idx_submissions_time ON submissions (submitted_at);
`

// postgres has no BLOB type
var postgresSchema = strings.ReplaceAll(schema, "BLOB", "BYTEA")

// Store records and queries transaction submissions. It implements
// tx.Recorder.
type Store struct {
	db     *sql.DB
	config *Config
}

var _ tx.Recorder = (*Store)(nil)

// Open connects to the configured database and initializes the schema.
func Open(ctx context.Context, config *Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", config.Driver, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, config.DefaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	s := &Store{db: db, config: config}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := schema
	if s.config.Driver == DriverPostgres {
		ddl = postgresSchema
	}
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// rebind rewrites ? placeholders to $1..$n for postgres. SQLite accepts
// the query unchanged.
func (s *Store) rebind(query string) string {
	if s.config.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Record stores one submission. Re-recording the same hash is treated as a
// replay of an already known submission and ignored.
func (s *Store) Record(entry tx.HistoryEntry) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.DefaultTimeout)
	defer cancel()

	query := s.rebind(`INSERT INTO submissions
		(hash, tx_type, account, sequence, result, applied, raw, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if s.config.Driver == DriverPostgres {
		query += " ON CONFLICT (hash) DO NOTHING"
	} else {
		query = strings.Replace(query, "INSERT INTO", "INSERT OR IGNORE INTO", 1)
	}

	_, err := s.db.ExecContext(ctx, query,
		entry.Hash, entry.TxType, entry.Account, entry.Sequence,
		entry.Result, entry.Applied, entry.Raw, entry.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("history: record %s: %w", entry.Hash, err)
	}
	return nil
}

// ByHash returns the submission with the given hash.
func (s *Store) ByHash(ctx context.Context, hash string) (tx.HistoryEntry, error) {
	if s.db == nil {
		return tx.HistoryEntry{}, ErrStoreClosed
	}
	row := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT hash, tx_type, account, sequence, result, applied, raw, submitted_at
		 FROM submissions WHERE hash = ?`), hash)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return tx.HistoryEntry{}, ErrNotFound
	}
	return entry, err
}

// Recent returns up to limit submissions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]tx.HistoryEntry, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT hash, tx_type, account, sequence, result, applied, raw, submitted_at
		 FROM submissions ORDER BY submitted_at DESC, hash LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ByAccount returns up to limit submissions for one account, ordered by
// sequence descending.
func (s *Store) ByAccount(ctx context.Context, account string, limit int) ([]tx.HistoryEntry, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT hash, tx_type, account, sequence, result, applied, raw, submitted_at
		 FROM submissions WHERE account = ? ORDER BY sequence DESC LIMIT ?`), account, limit)
	if err != nil {
		return nil, fmt.Errorf("history: by account %s: %w", account, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Count returns the total number of recorded submissions.
func (s *Store) Count(ctx context.Context) (uint64, error) {
	if s.db == nil {
		return 0, ErrStoreClosed
	}
	var n uint64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (tx.HistoryEntry, error) {
	var (
		entry tx.HistoryEntry
		at    time.Time
	)
	err := row.Scan(&entry.Hash, &entry.TxType, &entry.Account, &entry.Sequence,
		&entry.Result, &entry.Applied, &entry.Raw, &at)
	if err != nil {
		return tx.HistoryEntry{}, err
	}
	entry.SubmittedAt = at.UTC()
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]tx.HistoryEntry, error) {
	var entries []tx.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

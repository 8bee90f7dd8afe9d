package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/mcalc/foundation/calc"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	"github.com/msto63/mcalc/pkg/core/version"
)

// Entry represents a single recorded evaluation
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Input        string    `json:"input"`
	Value        int       `json:"value"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Position     int       `json:"position"`
}

// Failed reports whether the evaluation produced an error
func (e *Entry) Failed() bool {
	return e.ErrorCode != "" || e.ErrorMessage != ""
}

// NewEntry builds an entry from the outcome of an evaluation
func NewEntry(input string, value int, err error) *Entry {
	entry := &Entry{
		Input:    input,
		Value:    value,
		Position: -1,
	}
	if err != nil {
		entry.Value = 0
		entry.ErrorCode = mdwerror.GetCode(err).String()
		entry.ErrorMessage = calc.Message(err)
		entry.Position = calc.Position(err)
	}
	return entry
}

// Filter defines criteria for listing entries
type Filter struct {
	OnlyFailed    bool
	OnlySucceeded bool
	Since         time.Time
	Limit         int
	Offset        int
}

// Stats summarizes the stored history
type Stats struct {
	Total       int64            `json:"total"`
	Succeeded   int64            `json:"succeeded"`
	Failed      int64            `json:"failed"`
	ByErrorCode map[string]int64 `json:"by_error_code"`
	LastEntry   time.Time        `json:"last_entry"`
}

// Store defines the interface for history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore creates a new SQLite-based history store
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "history.NewSQLiteStore")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "history.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "history.NewSQLiteStore")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		input TEXT NOT NULL,
		value INTEGER,
		error_code TEXT,
		error_message TEXT,
		position INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_timestamp ON evaluations(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_error_code ON evaluations(error_code);
	`

	var current int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return err
	}
	if current > version.HistorySchema {
		return fmt.Errorf("database schema %d is newer than supported schema %d", current, version.HistorySchema)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version.HistorySchema))
	return err
}

// SchemaVersion returns the schema version stored in the database
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, dbError(err, "failed to read schema version", "history.SchemaVersion")
	}
	return v, nil
}

// Record stores an entry, assigning ID and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	var value, position sql.NullInt64
	var code, message sql.NullString
	if entry.Failed() {
		code = sql.NullString{String: entry.ErrorCode, Valid: entry.ErrorCode != ""}
		message = sql.NullString{String: entry.ErrorMessage, Valid: true}
		position = sql.NullInt64{Int64: int64(entry.Position), Valid: entry.Position >= 0}
	} else {
		value = sql.NullInt64{Int64: int64(entry.Value), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, timestamp, input, value, error_code, error_message, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.Input, value, code, message, position)

	if err != nil {
		return dbError(err, "failed to insert history entry", "history.Record")
	}

	return nil
}

// List returns entries matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, input, value, error_code, error_message, position FROM evaluations WHERE 1=1`
	var args []interface{}

	if filter.OnlyFailed {
		query += " AND error_message IS NOT NULL"
	}
	if filter.OnlySucceeded {
		query += " AND error_message IS NULL"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history", "history.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var value, position sql.NullInt64
		var code, message sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Input, &value,
			&code, &message, &position); err != nil {
			return nil, dbError(err, "failed to scan history entry", "history.List")
		}

		entry.Value = int(value.Int64)
		entry.ErrorCode = code.String
		entry.ErrorMessage = message.String
		entry.Position = -1
		if position.Valid {
			entry.Position = int(position.Int64)
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history", "history.List")
	}

	return entries, nil
}

// Stats returns counts over the stored history
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByErrorCode: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(error_message) FROM evaluations
	`).Scan(&stats.Total, &stats.Failed)
	if err != nil {
		return nil, dbError(err, "failed to count history", "history.Stats")
	}
	stats.Succeeded = stats.Total - stats.Failed

	rows, err := s.db.QueryContext(ctx, `
		SELECT error_code, COUNT(*) FROM evaluations
		WHERE error_code IS NOT NULL GROUP BY error_code
	`)
	if err != nil {
		return nil, dbError(err, "failed to group history", "history.Stats")
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, dbError(err, "failed to scan history stats", "history.Stats")
		}
		stats.ByErrorCode[code] = count
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history stats", "history.Stats")
	}

	var last sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT MAX(timestamp) FROM evaluations`).Scan(&last)
	if err != nil {
		return nil, dbError(err, "failed to read last history entry", "history.Stats")
	}
	if last.Valid {
		stats.LastEntry = parseTimestamp(last.String)
	}

	return stats, nil
}

// Prune deletes entries older than the given age
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history", "history.Prune")
	}
	return result.RowsAffected()
}

// Clear deletes all entries
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, dbError(err, "failed to clear history", "history.Clear")
	}
	return result.RowsAffected()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
}

// parseTimestamp reads the text form go-sqlite3 writes for time values
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func dbError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}

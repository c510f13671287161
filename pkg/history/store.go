package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"chatrelay/pkg/gateway"
	"chatrelay/pkg/health"
)

const schema = `
CREATE TABLE IF NOT EXISTS probes (
	id          TEXT PRIMARY KEY,
	provider    TEXT NOT NULL,
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	latency_ms  INTEGER NOT NULL,
	checked_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_probes_provider ON probes(provider);
CREATE INDEX IF NOT EXISTS idx_probes_checked_at ON probes(checked_at);
`

// StoreConfig contains configuration for the SQLite probe store.
type StoreConfig struct {
	// Path is the database file path. Parent directories are created
	// if they do not exist.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Path:        "data/history.db",
		BusyTimeout: 5 * time.Second,
	}
}

// Store records probe outcomes in a SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ gateway.Recorder = (*Store)(nil)

// NewStore opens the database at cfg.Path, creating the file and schema
// as needed, and enables WAL mode for concurrent readers.
func NewStore(cfg *StoreConfig) (*Store, error) {
	if cfg == nil {
		cfg = DefaultStoreConfig()
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: slog.Default().With("component", "history.store"),
	}

	if err := s.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("history store initialized", "path", cfg.Path)
	return s, nil
}

func (s *Store) initialize(cfg *StoreConfig) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordProbe inserts a probe record. Failures are logged and dropped so
// that recording never interferes with health checking.
func (s *Store) RecordProbe(rec gateway.ProbeRecord) {
	_, err := s.db.Exec(
		`INSERT INTO probes (id, provider, status, error, latency_ms, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		rec.Provider,
		rec.Status.String(),
		rec.Error,
		rec.Latency.Milliseconds(),
		rec.CheckedAt.UTC(),
	)
	if err != nil {
		s.logger.Error("failed to record probe", "provider", rec.Provider, "error", err)
	}
}

// Probe is a stored probe outcome.
type Probe struct {
	ID        string        `json:"id"`
	Provider  string        `json:"provider"`
	Status    health.Status `json:"status"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"latency_ms"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Recent returns the most recent probes, newest first. A non-empty
// provider restricts results to that provider. Limit caps the number of
// rows; non-positive means a default of 50.
func (s *Store) Recent(ctx context.Context, provider string, limit int) ([]Probe, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, provider, status, error, latency_ms, checked_at
		FROM probes`
	args := []any{}
	if provider != "" {
		query += ` WHERE provider = ?`
		args = append(args, provider)
	}
	query += ` ORDER BY checked_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query probes: %w", err)
	}
	defer rows.Close()

	var probes []Probe
	for rows.Next() {
		var (
			p         Probe
			statusStr string
			latencyMs int64
		)
		if err := rows.Scan(&p.ID, &p.Provider, &statusStr, &p.Error, &latencyMs, &p.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan probe: %w", err)
		}
		if p.Status, err = health.ParseStatus(statusStr); err != nil {
			p.Status = health.StatusUnknown
		}
		p.Latency = time.Duration(latencyMs) * time.Millisecond
		probes = append(probes, p)
	}
	return probes, rows.Err()
}

// DeleteBefore removes all probes checked before the cutoff and returns
// the number of rows deleted.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM probes WHERE checked_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete probes: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the total number of stored probes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM probes`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

package embed

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// CacheConfig represents embedding cache storage configuration
type CacheConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Cache is a durable content-addressed store of embedding vectors keyed by
// fingerprint, with TTL-based expiry. Writes are idempotent: the same
// fingerprint always maps to an equivalent vector, so concurrent writers
// racing on a key converge.
type Cache struct {
	db  *sqlx.DB
	now func() time.Time
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS embeddings (
	fingerprint TEXT PRIMARY KEY,
	vector      BLOB NOT NULL,
	dim         INTEGER NOT NULL,
	expires_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_embeddings_expires ON embeddings(expires_at);

CREATE TABLE IF NOT EXISTS counters (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL DEFAULT 0
);
`

// NewCache opens the cache database, applying the usual SQLite tuning
func NewCache(ctx context.Context, cfg CacheConfig) (*Cache, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:feedsift.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Entry is one cached embedding vector
type Entry struct {
	Fingerprint string
	Vector      []float64
}

// GetMany looks up a batch of fingerprints, returning only the hits. Expired
// rows are misses. An error from the store should be treated by callers as a
// full miss, correctness never depends on the cache being present.
func (c *Cache) GetMany(ctx context.Context, fingerprints []string) (map[string][]float64, error) {
	if len(fingerprints) == 0 {
		return map[string][]float64{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT fingerprint, vector, dim FROM embeddings WHERE fingerprint IN (?) AND expires_at > ?",
		fingerprints, c.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build lookup query: %w", err)
	}

	rows := []struct {
		Fingerprint string `db:"fingerprint"`
		Vector      []byte `db:"vector"`
		Dim         int    `db:"dim"`
	}{}
	if err := c.db.SelectContext(ctx, &rows, c.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("lookup embeddings: %w", err)
	}

	result := make(map[string][]float64, len(rows))
	for _, row := range rows {
		vector, err := decodeVector(row.Vector, row.Dim)
		if err != nil {
			// corrupt row, skip it and let backfill overwrite
			continue
		}
		result[row.Fingerprint] = vector
	}
	return result, nil
}

// PutMany upserts a batch of entries with the given TTL. SQLite busy errors
// are retried with backoff, the same way other write paths handle lock
// contention.
func (c *Cache) PutMany(ctx context.Context, entries []Entry, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}
	expiresAt := c.now().Add(ttl).UTC()

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		tx, err := c.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		for _, entry := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO embeddings (fingerprint, vector, dim, expires_at) VALUES (?, ?, ?, ?)
				ON CONFLICT(fingerprint) DO UPDATE SET vector = excluded.vector, dim = excluded.dim, expires_at = excluded.expires_at`,
				entry.Fingerprint, encodeVector(entry.Vector), len(entry.Vector), expiresAt)
			if err != nil {
				return fmt.Errorf("upsert embedding %s: %w", entry.Fingerprint, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("put embeddings: %w", err)
	}

	// opportunistic cleanup, expired rows are already invisible to lookups
	if _, err := c.db.ExecContext(ctx, "DELETE FROM embeddings WHERE expires_at <= ?", c.now().UTC()); err != nil {
		return fmt.Errorf("cleanup expired embeddings: %w", err)
	}
	return nil
}

// Inc bumps an observability counter, failures are ignored by callers since
// counters never affect correctness
func (c *Cache) Inc(ctx context.Context, name string, by int) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO counters (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`, name, by)
	if err != nil {
		return fmt.Errorf("increment counter %s: %w", name, err)
	}
	return nil
}

// Counter returns the current value of an observability counter
func (c *Cache) Counter(ctx context.Context, name string) (int, error) {
	var value int
	err := c.db.GetContext(ctx, &value, "SELECT value FROM counters WHERE name = ?", name)
	if err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return value, nil
}

// encodeVector packs a float64 vector as little-endian bytes
func encodeVector(vector []float64) []byte {
	buf := make([]byte, 8*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// decodeVector unpacks a little-endian blob, checking the declared dimension
func decodeVector(data []byte, dim int) ([]float64, error) {
	if len(data) != dim*8 {
		return nil, fmt.Errorf("vector blob size %d does not match dim %d", len(data), dim)
	}
	vector := make([]float64, dim)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return vector, nil
}

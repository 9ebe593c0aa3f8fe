package setcache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/zerr"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS icon_sets (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	provider TEXT    NOT NULL,
	prefix   TEXT    NOT NULL,
	data     BLOB    NOT NULL,
	saved_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS icon_sets_store ON icon_sets (provider, prefix);
`

// SQLite stores chunks as rows of the icon_sets table.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLite opens or creates the database at path.
func NewSQLite(ctx context.Context, path string, ttl time.Duration) (*SQLite, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "path", cleanPath)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "path", cleanPath)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "path", cleanPath)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheConnectFailed.Error()), "path", cleanPath)
	}
	return &SQLite{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns every unexpired chunk of key. Expired rows are deleted first.
func (s *SQLite) Get(ctx context.Context, key domain.SetKey) ([]*domain.IconSetData, error) {
	if s.ttl > 0 {
		cutoff := s.now().Add(-s.ttl).UnixMilli()
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM icon_sets WHERE provider = ? AND prefix = ? AND saved_at < ?`,
			key.Provider, key.Prefix, cutoff,
		); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "set", key.String())
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM icon_sets WHERE provider = ? AND prefix = ? ORDER BY id`,
		key.Provider, key.Prefix,
	)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "set", key.String())
	}
	defer func() {
		_ = rows.Close()
	}()

	var (
		chunks   []*domain.IconSetData
		firstErr error
	)
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return chunks, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "set", key.String())
		}
		e, err := decodeEntry(b)
		if err != nil {
			if firstErr == nil {
				firstErr = zerr.With(err, "set", key.String())
			}
			continue
		}
		chunks = append(chunks, e.Data)
	}
	if err := rows.Err(); err != nil {
		return chunks, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "set", key.String())
	}
	return chunks, firstErr
}

// Put inserts data as a new chunk of key.
func (s *SQLite) Put(ctx context.Context, key domain.SetKey, data *domain.IconSetData) error {
	now := s.now()
	b, err := encodeEntry(now, data)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO icon_sets (provider, prefix, data, saved_at) VALUES (?, ?, ?, ?)`,
		key.Provider, key.Prefix, b, now.UnixMilli(),
	); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "set", key.String())
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Package store persists per-file editing sessions (cursor and scroll
// position) in SQLite so reopening a file resumes where it was left.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS file_sessions (
	path        TEXT PRIMARY KEY,
	line        INTEGER NOT NULL,
	col         INTEGER NOT NULL,
	scroll      INTEGER NOT NULL,
	updated     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_sessions_updated ON file_sessions(updated);
`

// Session is the remembered state of one file.
type Session struct {
	Path    string
	Line    int
	Offset  int
	Scroll  int
	Updated time.Time
}

// Store is a SQLite-backed session store. A nil *Store is valid and remembers
// nothing.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens the session database at dbPath. Sessions untouched
// for longer than ttl are purged on open.
func Open(dbPath string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, ttl: ttl}
	s.purgeStale()
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the session recorded for path.
func (s *Store) Load(path string) (Session, bool) {
	if s == nil {
		return Session{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{Path: path}
	var updated int64
	err := s.db.QueryRow(
		"SELECT line, col, scroll, updated FROM file_sessions WHERE path = ?",
		path,
	).Scan(&sess.Line, &sess.Offset, &sess.Scroll, &updated)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("path", path).Msg("failed to load session")
		}
		return Session{}, false
	}
	sess.Updated = time.Unix(updated, 0)
	return sess, true
}

// Save records sess, replacing any previous entry for its path.
func (s *Store) Save(sess Session) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO file_sessions (path, line, col, scroll, updated) VALUES (?, ?, ?, ?, ?)",
		sess.Path, sess.Line, sess.Offset, sess.Scroll, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", sess.Path).Msg("failed to save session")
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions, most recently updated first.
func (s *Store) Recent(limit int) ([]Session, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT path, line, col, scroll, updated FROM file_sessions ORDER BY updated DESC, path LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var updated int64
		if err := rows.Scan(&sess.Path, &sess.Line, &sess.Offset, &sess.Scroll, &updated); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Updated = time.Unix(updated, 0)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// purgeStale removes sessions older than the TTL.
func (s *Store) purgeStale() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl).Unix()
	res, err := s.db.Exec("DELETE FROM file_sessions WHERE updated < ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale sessions")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale sessions")
	}
}
